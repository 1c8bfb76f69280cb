package router

import (
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

// New 组装路由。URL 结构与参考实现一致：用户名直接挂在根路径下，
// gin 允许静态段（/new、/follow、/group）与 :username 并存。
func New(cfg *config.Config, h *handler.Handler, rdb *redis.Client) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), gzip.Gzip(gzip.DefaultCompression))
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware("microblog"))
	}
	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })

	// 上传图片按相对路径挂在 base_url 下直出
	if cfg.Upload.BaseURL != "" {
		r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	auth := middleware.AuthRequired(cfg.JWT.Secret)
	optional := middleware.AuthOptional(cfg.JWT.Secret)
	limit := middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	indexCache := middleware.CachePage(rdb, time.Duration(cfg.Cache.IndexTTLSeconds)*time.Second)

	r.GET("/", indexCache, h.Index)
	r.GET("/group/:slug", h.GroupPosts)
	r.GET("/new", auth, h.NewPostForm)
	r.POST("/new", auth, limit, h.CreatePost)
	r.GET("/follow", auth, h.FollowIndex)

	r.GET("/:username", optional, h.Profile)
	r.GET("/:username/follow", auth, limit, h.Follow)
	r.GET("/:username/unfollow", auth, limit, h.Unfollow)
	r.GET("/:username/:post_id", h.PostDetail)
	r.GET("/:username/:post_id/edit", auth, h.EditPostForm)
	r.POST("/:username/:post_id/edit", auth, limit, h.UpdatePost)
	r.POST("/:username/:post_id/comment", auth, limit, h.AddComment)

	return r
}
