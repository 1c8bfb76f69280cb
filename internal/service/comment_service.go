package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// CommentInput 校验后的评论数据
type CommentInput struct {
	Text string
}

type CommentService interface {
	// Add 帖子不存在时返回 ErrNotFound
	Add(ctx context.Context, authorID, username, postID string, in CommentInput) (*model.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *commentService) Add(ctx context.Context, authorID, username, postID string, in CommentInput) (*model.Comment, error) {
	post, err := s.postRepo.GetByIDAndUsername(ctx, postID, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	comment := &model.Comment{
		Text:     in.Text,
		PostID:   post.ID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
