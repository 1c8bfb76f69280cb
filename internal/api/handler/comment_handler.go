package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/form"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// AddComment 评论后回帖子详情页
// @Summary 添加评论
// @Tags 评论
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 302
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username}/{post_id}/comment [post]
func (h *Handler) AddComment(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	var f form.CommentForm
	if err := c.ShouldBind(&f); err != nil {
		response.ValidationFailed(c, form.Fields(err), f)
		return
	}
	author := middleware.CurrentUserID(c)
	_, err := h.comments.Add(c.Request.Context(), author, username, postID, service.CommentInput{Text: f.Text})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(username, postID))
}
