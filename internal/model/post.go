package model

import "time"

// Post 帖子（必有作者，可选小组和配图）
// 删除作者级联删帖；删除小组仅把 group_id 置空，帖子保留
type Post struct {
	ID       string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Text     string  `gorm:"type:text;not null" json:"text"`
	Image    string  `gorm:"type:varchar(255)" json:"image,omitempty"`
	AuthorID string  `gorm:"type:varchar(36);not null;index:idx_post_author" json:"author_id"`
	Author   *User   `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GroupID  *string `gorm:"type:varchar(36);index:idx_post_group" json:"group_id,omitempty"`
	Group    *Group  `gorm:"constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// CreatedAt 即发布时间，创建后不再变更
	CreatedAt time.Time `gorm:"index:idx_post_created" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }

// Summary 文本前 15 个字符，用于展示和调试输出
func (p *Post) Summary() string { return summarize(p.Text) }
