package model

import "time"

// User 用户（账号生命周期由外部身份系统管理，这里只存档案）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(150);uniqueIndex:ux_user_username;not null"`
	Email     string `gorm:"type:varchar(254)"`
	Password  string `gorm:"type:varchar(128)" json:"-"` // bcrypt 哈希，仅 seed 工具写入
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
