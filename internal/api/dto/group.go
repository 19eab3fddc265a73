package dto

// GroupForm 管理员新建分组
type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" validate:"required"`
}
