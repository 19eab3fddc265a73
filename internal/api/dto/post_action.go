package dto

// CommentForm 评论
type CommentForm struct {
	Text string `form:"text" validate:"required,notspace"`
}
