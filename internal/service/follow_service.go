package service

import (
	"context"
	"yatube/internal/model"
	"yatube/internal/pkg/kafka"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID uint64, username string) error
	Unfollow(ctx context.Context, userID uint64, username string) error
	IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error)
}

type FollowServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
	publisher  kafka.Publisher
}

func NewFollowService(followRepo repository.FollowRepo, userRepo repository.UserRepo, publisher kafka.Publisher) FollowService {
	return &FollowServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// Follow 幂等；关注自己时什么也不做
func (s *FollowServiceImpl) Follow(ctx context.Context, userID uint64, username string) error {
	author, err := s.getAuthor(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return nil
	}

	exists, err := s.IsFollowing(ctx, userID, author.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.followRepo.CreateFollow(ctx, &model.Follow{AuthorID: author.ID, UserID: userID})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, &kafka.Event{
		Type:     kafka.EventFollowed,
		ActorID:  userID,
		AuthorID: author.ID,
	})
	return nil
}

// Unfollow 未关注时同样视为成功
func (s *FollowServiceImpl) Unfollow(ctx context.Context, userID uint64, username string) error {
	author, err := s.getAuthor(ctx, username)
	if err != nil {
		return err
	}

	rows, err := s.followRepo.DeleteFollow(ctx, userID, author.ID)
	if err != nil {
		return err
	}
	if rows > 0 {
		s.publisher.Publish(ctx, &kafka.Event{
			Type:     kafka.EventUnfollowed,
			ActorID:  userID,
			AuthorID: author.ID,
		})
	}
	return nil
}

func (s *FollowServiceImpl) IsFollowing(ctx context.Context, userID, authorID uint64) (bool, error) {
	follow, err := s.followRepo.GetFollow(ctx, userID, authorID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

func (s *FollowServiceImpl) getAuthor(ctx context.Context, username string) (*model.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}
	return author, nil
}
