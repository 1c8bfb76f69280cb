package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Profile 作者主页：帖子一页 + 聚合数 + 是否已关注
// @Summary 作者主页
// @Tags 用户
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username} [get]
func (h *Handler) Profile(c *gin.Context) {
	viewer := middleware.CurrentUserID(c)
	profile, err := h.profiles.Profile(c.Request.Context(), viewer, c.Param("username"), pageQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"profile":   profile.User,
		"page":      profile.Page,
		"stats":     profile.Stats,
		"following": profile.Following,
	})
}
