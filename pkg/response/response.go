package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/logger"

	"go.uber.org/zap"
)

// Response 统一返回包体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// ValidationFailed 校验失败：回传字段错误和原始提交值，便于前端回填表单
func ValidationFailed(c *gin.Context, fieldErrors map[string]string, form interface{}) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Data:    gin.H{"errors": fieldErrors, "form": form},
	})
}

// NotFound 404 包体，带请求路径（不回显其它诊断信息）
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    http.StatusNotFound,
		Message: "not found",
		Data:    gin.H{"path": c.Request.URL.Path},
	})
}

// InternalError 500 包体，细节只进日志不出响应
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}
