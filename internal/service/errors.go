package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 引用的用户/小组/帖子不存在
	ErrNotFound = errors.New("not found")
	// ErrNotOwner 编辑者不是帖子作者
	ErrNotOwner = errors.New("not the author")
	// ErrGroupNotFound 表单里的小组 slug 解析失败（按校验错误处理，不是 404）
	ErrGroupNotFound = errors.New("group does not exist")
)

// asNotFound 把 gorm 的记录缺失统一翻译成 ErrNotFound
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
