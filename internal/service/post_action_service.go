package service

import (
	"context"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/kafka"
	"yatube/internal/pkg/util"
	"yatube/internal/repository"
)

// PostActionService 帖子上的互动，目前只有评论
type PostActionService interface {
	AddComment(ctx context.Context, userID, postID uint64, form *dto.CommentForm) (*model.Comment, error)
}

type postActionServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	publisher   kafka.Publisher
}

func NewPostActionService(postRepo repository.PostRepo, commentRepo repository.CommentRepo, publisher kafka.Publisher) PostActionService {
	return &postActionServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
	}
}

// AddComment 帖子不存在返回 ErrPostNotFound；表单无效返回 FormError，调用方可直接忽略
func (s *postActionServiceImpl) AddComment(ctx context.Context, userID, postID uint64, form *dto.CommentForm) (*model.Comment, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err = newFormError(util.ValidateForm(form)); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   &post.ID,
		AuthorID: userID,
		Text:     form.Text,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, &kafka.Event{
		Type:      kafka.EventCommentCreated,
		ActorID:   userID,
		AuthorID:  post.AuthorID,
		PostID:    post.ID,
		CommentID: comment.ID,
	})
	return comment, nil
}
