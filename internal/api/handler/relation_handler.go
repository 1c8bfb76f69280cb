package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Follow 关注作者后回作者主页
// @Summary 关注作者（幂等）
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /{username}/follow [get]
func (h *Handler) Follow(c *gin.Context) {
	username := c.Param("username")
	viewer := middleware.CurrentUserID(c)
	if err := h.relations.Follow(c.Request.Context(), viewer, username); err != nil {
		h.relationError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}

// Unfollow 取消关注后回作者主页
// @Summary 取消关注（不存在的边视为空操作）
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /{username}/unfollow [get]
func (h *Handler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	viewer := middleware.CurrentUserID(c)
	if err := h.relations.Unfollow(c.Request.Context(), viewer, username); err != nil {
		h.relationError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}

func (h *Handler) relationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c)
		return
	}
	response.InternalError(c, err)
}
