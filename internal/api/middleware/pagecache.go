package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/pkg/logger"
)

// 首页整页缓存：TTL 内重复请求原样回放之前渲染的字节，没有主动失效钩子

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage 按完整 URI 缓存 200 响应
func CachePage(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := "pagecache:" + c.Request.URL.RequestURI()
		if data, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil {
			var page cachedPage
			if json.Unmarshal(data, &page) == nil {
				logger.Debug("page cache hit", zap.String("key", key))
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
		}

		w := &captureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedPage{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rdb.Set(c.Request.Context(), key, payload, ttl).Err(); err != nil {
			logger.Warn("page cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
