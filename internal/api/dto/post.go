package dto

import (
	"yatube/internal/model"
	"yatube/internal/pkg/pagination"
)

// PostForm 新建/编辑帖子，image 通过 multipart 单独读取
type PostForm struct {
	Text       string `form:"text" validate:"required,notspace"`
	Group      string `form:"group" validate:"omitempty,numeric"`
	ImageClear bool   `form:"image-clear"`
}

// PostPageDTO 帖子分页列表
type PostPageDTO struct {
	Page  pagination.Page
	Posts []*model.Post
}

// GroupPageDTO 分组页
type GroupPageDTO struct {
	Group *model.Group
	PostPageDTO
}

// ProfileDTO 作者主页
type ProfileDTO struct {
	Author         *model.User
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	Following      bool
	PostPageDTO
}

// PostDetailDTO 帖子详情
type PostDetailDTO struct {
	Post         *model.Post
	PostCount    int64 // 作者的帖子总数
	Comments     []*model.Comment
	CommentCount int64
}
