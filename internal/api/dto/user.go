package dto

// SignupForm 注册
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8,max=72"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

// LoginForm 登录凭证
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// PasswordChangeForm 修改密码
type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" validate:"required,min=8,max=72"`
	NewPassword2 string `form:"new_password2" validate:"required,eqfield=NewPassword1"`
}
