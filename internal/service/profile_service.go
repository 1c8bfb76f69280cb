package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/paginator"
)

// ProfilePage 作者主页：档案 + 帖子一页 + 聚合数 + viewer 是否已关注
type ProfilePage struct {
	User      *model.User                 `json:"profile"`
	Page      *paginator.Page[model.Post] `json:"page"`
	Stats     AuthorStats                 `json:"stats"`
	Following bool                        `json:"following"`
}

type ProfileService interface {
	// Profile viewerID 为空表示匿名访问，following 恒为 false
	Profile(ctx context.Context, viewerID, username string, page int) (*ProfilePage, error)
}

type profileService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
) ProfileService {
	return &profileService{userRepo: userRepo, postRepo: postRepo, followRepo: followRepo}
}

func (s *profileService) Profile(ctx context.Context, viewerID, username string, page int) (*ProfilePage, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	p, err := s.postRepo.ListByAuthor(ctx, user.ID, page, PageSize)
	if err != nil {
		return nil, err
	}
	stats, err := authorStats(ctx, s.postRepo, s.followRepo, user.ID)
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != "" {
		if following, err = s.followRepo.Exists(ctx, viewerID, user.ID); err != nil {
			return nil, err
		}
	}
	return &ProfilePage{User: user, Page: p, Stats: stats, Following: following}, nil
}
