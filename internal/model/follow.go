package model

import "time"

// Follow 关注关系（follower 关注 author）
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);not null;index:idx_follow_follower;index:idx_follow_pair,unique"`
	Follower   *User  `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	AuthorID   string `gorm:"type:varchar(36);not null;index:idx_follow_author;index:idx_follow_pair,unique"`
	Author     *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (follower_id, author_id)
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Follow) TableName() string { return "follows" }
