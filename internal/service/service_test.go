package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/internal/testdb"
)

type env struct {
	db        *gorm.DB
	posts     service.PostService
	profiles  service.ProfileService
	comments  service.CommentService
	relations service.RelationshipService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testdb.Open(t)
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	return &env{
		db:        db,
		posts:     service.NewPostService(postRepo, groupRepo, commentRepo, followRepo),
		profiles:  service.NewProfileService(userRepo, postRepo, followRepo),
		comments:  service.NewCommentService(postRepo, commentRepo),
		relations: service.NewRelationshipService(userRepo, followRepo),
	}
}

func (e *env) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *env) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: slug, Slug: slug}
	require.NoError(t, e.db.Create(g).Error)
	return g
}

func (e *env) post(t *testing.T, author *model.User, groupID *string, text string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        uuid.New().String(),
		Text:      text,
		AuthorID:  author.ID,
		GroupID:   groupID,
		CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *env) postCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.Post{}).Count(&n).Error)
	return n
}

func (e *env) followCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.Follow{}).Count(&n).Error)
	return n
}

func ctx() context.Context { return context.Background() }
