package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/internal/api/form"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Index 全站帖子列表（外层套整页缓存）
// @Summary 首页帖子列表
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page, err := h.posts.ListAll(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page})
}

// GroupPosts 小组帖子列表
// @Summary 小组帖子列表
// @Tags 帖子
// @Param slug path string true "小组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug} [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	gp, err := h.posts.ListByGroup(c.Request.Context(), c.Param("slug"), pageQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"group": gp.Group, "page": gp.Page})
}

// FollowIndex 关注流：viewer 关注的作者的帖子
// @Summary 关注流
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /follow [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	viewer := middleware.CurrentUserID(c)
	page, err := h.posts.ListFeed(c.Request.Context(), viewer, pageQuery(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page})
}

// NewPostForm 发帖表单页
// @Summary 发帖表单
// @Tags 帖子
// @Success 200 {object} response.Response
// @Router /new [get]
func (h *Handler) NewPostForm(c *gin.Context) {
	response.Success(c, gin.H{"form": form.PostForm{}, "edit": false})
}

// CreatePost 发帖后回首页
// @Summary 发帖
// @Tags 帖子
// @Accept mpfd
// @Success 302
// @Failure 400 {object} response.Response
// @Router /new [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var f form.PostForm
	if err := c.ShouldBind(&f); err != nil {
		response.ValidationFailed(c, form.Fields(err), f)
		return
	}
	image, fieldErr := h.saveImage(c)
	if fieldErr != "" {
		response.ValidationFailed(c, map[string]string{"image": fieldErr}, f)
		return
	}
	in := service.PostInput{Text: f.Text, GroupSlug: f.Group, Image: image}
	if _, err := h.posts.Create(c.Request.Context(), middleware.CurrentUserID(c), in); err != nil {
		// 发帖失败时不在磁盘上留孤儿图片
		h.removeImage(image)
		if errors.Is(err, service.ErrGroupNotFound) {
			response.ValidationFailed(c, map[string]string{"group": err.Error()}, f)
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// PostDetail 帖子详情 + 评论 + 作者聚合数
// @Summary 帖子详情
// @Tags 帖子
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username}/{post_id} [get]
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.posts.Get(c.Request.Context(), c.Param("username"), c.Param("post_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":     detail.Post,
		"comments": detail.Comments,
		"stats":    detail.Stats,
		"form":     form.CommentForm{},
	})
}

// EditPostForm 编辑表单页；非作者一律 302 回详情页
// @Summary 编辑表单
// @Tags 帖子
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username}/{post_id}/edit [get]
func (h *Handler) EditPostForm(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	detail, err := h.posts.Get(c.Request.Context(), username, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if detail.Post.AuthorID != middleware.CurrentUserID(c) {
		c.Redirect(http.StatusFound, postDetailPath(username, postID))
		return
	}
	f := form.PostForm{Text: detail.Post.Text}
	if detail.Post.Group != nil {
		f.Group = detail.Post.Group.Slug
	}
	response.Success(c, gin.H{"form": f, "edit": true, "post": detail.Post})
}

// UpdatePost 保存编辑后回详情页；非作者静默 302 回详情页（不报错）
// @Summary 编辑帖子
// @Tags 帖子
// @Accept mpfd
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 302
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username}/{post_id}/edit [post]
func (h *Handler) UpdatePost(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	detail, err := h.posts.Get(c.Request.Context(), username, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	viewer := middleware.CurrentUserID(c)
	// 归属检查先于表单校验：非作者连校验错误都看不到，直接回详情页
	if detail.Post.AuthorID != viewer {
		c.Redirect(http.StatusFound, postDetailPath(username, postID))
		return
	}

	var f form.PostForm
	if err := c.ShouldBind(&f); err != nil {
		response.ValidationFailed(c, form.Fields(err), f)
		return
	}
	image, fieldErr := h.saveImage(c)
	if fieldErr != "" {
		response.ValidationFailed(c, map[string]string{"image": fieldErr}, f)
		return
	}
	in := service.PostInput{Text: f.Text, GroupSlug: f.Group, Image: image}
	_, err = h.posts.Update(c.Request.Context(), viewer, username, postID, in)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, postDetailPath(username, postID))
	case errors.Is(err, service.ErrNotOwner):
		h.removeImage(image)
		c.Redirect(http.StatusFound, postDetailPath(username, postID))
	case errors.Is(err, service.ErrNotFound):
		h.removeImage(image)
		response.NotFound(c)
	case errors.Is(err, service.ErrGroupNotFound):
		h.removeImage(image)
		response.ValidationFailed(c, map[string]string{"group": err.Error()}, f)
	default:
		h.removeImage(image)
		response.InternalError(c, err)
	}
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// saveImage 可选图片落盘，返回相对路径；没有上传返回空串
func (h *Handler) saveImage(c *gin.Context) (string, string) {
	file, err := c.FormFile("image")
	if err != nil {
		// 没带文件或非 multipart 请求都按“未上传”处理
		return "", ""
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] {
		return "", "unsupported image type"
	}
	rel := filepath.Join("posts", uuid.New().String()+ext)
	dst := filepath.Join(h.cfg.Upload.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", "failed to store image"
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", "failed to store image"
	}
	return filepath.ToSlash(rel), ""
}

// removeImage 回滚已落盘但最终没被引用的图片
func (h *Handler) removeImage(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(h.cfg.Upload.Dir, filepath.FromSlash(rel)))
}
