package dto

// CreateCommentRequest 发表评论请求
// text 的裁剪与长度校验在 service 层完成
type CreateCommentRequest struct {
	Text       string `json:"text"`
	AuthorName string `json:"author_name" validate:"author_name"`
}

// CommentItem 评论项
type CommentItem struct {
	ID         int64  `json:"id"`
	Film       int64  `json:"film"`
	Text       string `json:"text"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}
