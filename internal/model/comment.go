package model

import "time"

// Comment 评论，挂在帖子下；删帖或删作者时级联删除
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PostID    string    `gorm:"type:varchar(36);not null;index:idx_comment_post" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string    `gorm:"type:varchar(36);not null;index:idx_comment_author" json:"author_id"`
	Author    *User     `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"-"`
}

func (Comment) TableName() string { return "comments" }

// Summary 文本前 15 个字符
func (c *Comment) Summary() string { return summarize(c.Text) }

func summarize(s string) string {
	const n = 15
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
