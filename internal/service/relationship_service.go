package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 幂等建立关注；自关注静默忽略；username 不存在返回 ErrNotFound
	Follow(ctx context.Context, followerID, username string) error
	// Unfollow 删除关注边；边不存在时为空操作
	Unfollow(ctx context.Context, followerID, username string) error
}

type relationshipService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewRelationshipService(userRepo repository.UserRepository, followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{userRepo: userRepo, followRepo: followRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return asNotFound(err)
	}
	if author.ID == followerID {
		return nil
	}
	return s.followRepo.Create(ctx, followerID, author.ID)
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return asNotFound(err)
	}
	if author.ID == followerID {
		return nil
	}
	return s.followRepo.Delete(ctx, followerID, author.ID)
}
