package kafka

import "time"

// 事件类型
const (
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventCommentCreated = "comment.created"
	EventFollowed       = "user.followed"
	EventUnfollowed     = "user.unfollowed"
)

// Event 业务事件，以 JSON 发送
type Event struct {
	Type      string    `json:"type"`
	ActorID   uint64    `json:"actor_id"`
	AuthorID  uint64    `json:"author_id,omitempty"`
	PostID    uint64    `json:"post_id,omitempty"`
	CommentID uint64    `json:"comment_id,omitempty"`
	GroupID   *uint64   `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
