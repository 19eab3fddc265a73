package service

import (
	"context"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/util"
	"yatube/internal/repository"
)

const msgSlugTaken = "Group with this Slug already exists."

type GroupService interface {
	ListGroups(ctx context.Context) ([]*model.Group, error)
	CreateGroup(ctx context.Context, form *dto.GroupForm) (*model.Group, error)
	DeleteGroup(ctx context.Context, slug string) error
}

type GroupServiceImpl struct {
	groupRepo repository.GroupRepo
}

func NewGroupService(groupRepo repository.GroupRepo) GroupService {
	return &GroupServiceImpl{groupRepo: groupRepo}
}

func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]*model.Group, error) {
	return s.groupRepo.ListGroups(ctx)
}

func (s *GroupServiceImpl) CreateGroup(ctx context.Context, form *dto.GroupForm) (*model.Group, error) {
	errs := util.ValidateForm(form)
	if errs == nil {
		errs = dto.FormErrors{}
	}
	if !errs.Has("slug") {
		exist, err := s.groupRepo.GetGroupBySlug(ctx, form.Slug)
		if err != nil {
			return nil, err
		}
		if exist != nil {
			errs.Add("slug", msgSlugTaken)
		}
	}
	if err := newFormError(errs); err != nil {
		return nil, err
	}

	group := &model.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	if err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup 分组下的帖子一并删除
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetGroupBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return s.groupRepo.DeleteGroup(ctx, group.ID)
}
