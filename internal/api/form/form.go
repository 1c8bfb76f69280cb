// Package form 定义各操作的静态输入结构，校验走 gin binding（validator）。
package form

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PostForm 发帖/编辑表单；group 是可选的小组 slug，图片走 multipart 单独取
type PostForm struct {
	Text  string `form:"text" json:"text" binding:"required"`
	Group string `form:"group" json:"group"`
}

// CommentForm 评论表单
type CommentForm struct {
	Text string `form:"text" json:"text" binding:"required"`
}

// Fields 把 binding 错误翻译成 字段 -> 提示 的映射，用于表单回显
func Fields(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				out[name] = "this field is required"
			default:
				out[name] = "invalid value"
			}
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
