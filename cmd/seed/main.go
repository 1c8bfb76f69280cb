package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// 身份系统在线上是外部服务；本地联调用这个工具灌演示账号和小组，
// 并打印可直接使用的 Bearer 令牌
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}
	hash := must(bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost))

	groups := []model.Group{
		{Title: "General", Slug: "general", Description: "Anything goes"},
		{Title: "Go", Slug: "go", Description: "Posts about Go"},
		{Title: "Photography", Slug: "photo", Description: "Pictures and gear"},
	}
	for i := range groups {
		groups[i].ID = uuid.New().String()
		if err := db.Where("slug = ?", groups[i].Slug).FirstOrCreate(&groups[i]).Error; err != nil {
			panic(err)
		}
	}

	ttl := time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	for _, username := range []string{"alice", "bob", "carol"} {
		user := model.User{
			ID:       uuid.New().String(),
			Username: username,
			Email:    username + "@example.com",
			Password: string(hash),
		}
		if err := db.Where("username = ?", username).FirstOrCreate(&user).Error; err != nil {
			panic(err)
		}
		token := must(middleware.SignToken(cfg.JWT.Secret, user.ID, ttl))
		fmt.Printf("%s\t%s\nAuthorization: Bearer %s\n\n", user.Username, user.ID, token)
	}
}
