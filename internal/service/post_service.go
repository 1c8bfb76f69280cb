package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/paginator"
)

// PageSize 所有列表的固定页大小
const PageSize = 10

// PostInput 校验后的发帖/编辑数据
type PostInput struct {
	Text      string
	GroupSlug string // 可为空
	Image     string // 已落盘的相对路径，可为空
}

// AuthorStats 作者聚合数（读时现算）
type AuthorStats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// GroupPage 小组信息 + 该组帖子的一页
type GroupPage struct {
	Group *model.Group                `json:"group"`
	Page  *paginator.Page[model.Post] `json:"page"`
}

// PostDetail 帖子详情：正文 + 评论（新的在前）+ 作者聚合数
type PostDetail struct {
	Post     *model.Post     `json:"post"`
	Comments []model.Comment `json:"comments"`
	Stats    AuthorStats     `json:"stats"`
}

// PostService 帖子读写
type PostService interface {
	ListAll(ctx context.Context, page int) (*paginator.Page[model.Post], error)
	ListByGroup(ctx context.Context, slug string, page int) (*GroupPage, error)
	ListFeed(ctx context.Context, viewerID string, page int) (*paginator.Page[model.Post], error)
	Get(ctx context.Context, username, postID string) (*PostDetail, error)
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	Update(ctx context.Context, viewerID, username, postID string, in PostInput) (*model.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
}

func (s *postService) ListAll(ctx context.Context, page int) (*paginator.Page[model.Post], error) {
	return s.postRepo.ListAll(ctx, page, PageSize)
}

func (s *postService) ListByGroup(ctx context.Context, slug string, page int) (*GroupPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, asNotFound(err)
	}
	p, err := s.postRepo.ListByGroup(ctx, group.ID, page, PageSize)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, Page: p}, nil
}

func (s *postService) ListFeed(ctx context.Context, viewerID string, page int) (*paginator.Page[model.Post], error) {
	return s.postRepo.ListFeed(ctx, viewerID, page, PageSize)
}

func (s *postService) Get(ctx context.Context, username, postID string) (*PostDetail, error) {
	post, err := s.postRepo.GetByIDAndUsername(ctx, postID, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	stats, err := authorStats(ctx, s.postRepo, s.followRepo, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, Stats: stats}, nil
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		Text:     in.Text,
		Image:    in.Image,
		AuthorID: authorID,
		GroupID:  groupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, viewerID, username, postID string, in PostInput) (*model.Post, error) {
	post, err := s.postRepo.GetByIDAndUsername(ctx, postID, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	if post.AuthorID != viewerID {
		return nil, ErrNotOwner
	}
	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}
	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) resolveGroup(ctx context.Context, slug string) (*string, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if asNotFound(err) == ErrNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group.ID, nil
}

// authorStats 帖子数/粉丝数/关注数
func authorStats(
	ctx context.Context,
	posts repository.PostRepository,
	follows repository.FollowRepository,
	authorID string,
) (AuthorStats, error) {
	var stats AuthorStats
	var err error
	if stats.Posts, err = posts.CountByAuthor(ctx, authorID); err != nil {
		return stats, err
	}
	if stats.Followers, err = follows.CountFollowers(ctx, authorID); err != nil {
		return stats, err
	}
	if stats.Following, err = follows.CountFollowing(ctx, authorID); err != nil {
		return stats, err
	}
	return stats, nil
}
