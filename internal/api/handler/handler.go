package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/service"
)

// Handler 把路由绑定到服务层调用并挑选视图模型
type Handler struct {
	cfg       *config.Config
	posts     service.PostService
	profiles  service.ProfileService
	comments  service.CommentService
	relations service.RelationshipService
}

func New(
	cfg *config.Config,
	posts service.PostService,
	profiles service.ProfileService,
	comments service.CommentService,
	relations service.RelationshipService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		posts:     posts,
		profiles:  profiles,
		comments:  comments,
		relations: relations,
	}
}

// pageQuery ?page= 参数，非法值交给分页器钳制
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func postDetailPath(username, postID string) string {
	return "/" + username + "/" + postID
}
