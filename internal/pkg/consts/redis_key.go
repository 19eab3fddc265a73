package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
	PageCacheKey      = "page:"
	// 用户会话版本，签发时写入 token，低于当前版本的 token 失效
	SessionVersionKey = "auth:session_version:"
)
