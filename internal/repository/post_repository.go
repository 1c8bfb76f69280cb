package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/pkg/paginator"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// Update 只更新 text/group_id/image，发布时间保持不变
	Update(ctx context.Context, post *model.Post) error
	GetByIDAndUsername(ctx context.Context, postID, username string) (*model.Post, error)
	ListAll(ctx context.Context, page, pageSize int) (*paginator.Page[model.Post], error)
	ListByGroup(ctx context.Context, groupID string, page, pageSize int) (*paginator.Page[model.Post], error)
	ListByAuthor(ctx context.Context, authorID string, page, pageSize int) (*paginator.Page[model.Post], error)
	// ListFeed 被关注作者的帖子（viewer 的关注流）
	ListFeed(ctx context.Context, viewerID string, page, pageSize int) (*paginator.Page[model.Post], error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("text", "group_id", "image", "updated_at").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

func (r *postRepository) GetByIDAndUsername(ctx context.Context, postID, username string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", postID, username).
		Preload("Author").Preload("Group").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context, page, pageSize int) (*paginator.Page[model.Post], error) {
	q := r.listQuery(ctx)
	return paginator.Paginate[model.Post](q, page, pageSize)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, page, pageSize int) (*paginator.Page[model.Post], error) {
	q := r.listQuery(ctx).Where("posts.group_id = ?", groupID)
	return paginator.Paginate[model.Post](q, page, pageSize)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, page, pageSize int) (*paginator.Page[model.Post], error) {
	q := r.listQuery(ctx).Where("posts.author_id = ?", authorID)
	return paginator.Paginate[model.Post](q, page, pageSize)
}

func (r *postRepository) ListFeed(ctx context.Context, viewerID string, page, pageSize int) (*paginator.Page[model.Post], error) {
	followed := r.db.Model(&model.Follow{}).
		Select("author_id").
		Where("follower_id = ?", viewerID)
	q := r.listQuery(ctx).Where("posts.author_id IN (?)", followed)
	return paginator.Paginate[model.Post](q, page, pageSize)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&cnt).Error
	return cnt, err
}

// listQuery 所有列表共用：预加载作者/小组，按发布时间倒序
func (r *postRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Preload("Author").Preload("Group").
		Order("posts.created_at DESC")
}
