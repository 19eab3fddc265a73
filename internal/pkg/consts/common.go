package consts

// gin.Context 中保存的当前用户信息
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

const (
	SessionCookie = "yatube_session"
	LoginURL      = "/auth/login/"
)

// MinIO 中帖子配图的前缀
const PostImagePrefix = "posts/"

// 模板名
const (
	TplIndex          = "posts/index.html"
	TplGroupList      = "posts/group_list.html"
	TplProfile        = "posts/profile.html"
	TplPostDetail     = "posts/post_detail.html"
	TplCreatePost     = "posts/create_post.html"
	TplFollow         = "posts/follow.html"
	TplSignup         = "users/signup.html"
	TplLogin          = "users/login.html"
	TplLoggedOut      = "users/logged_out.html"
	TplPasswordChange = "users/password_change_form.html"
	TplPasswordDone   = "users/password_change_done.html"
	TplAdmin          = "admin/index.html"
	Tpl403            = "core/403.html"
	Tpl404            = "core/404.html"
	Tpl500            = "core/500.html"
)
