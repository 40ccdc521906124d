package middleware

import "context"

type ContextKey string

const (
	ContextUserID    ContextKey = "user_id"
	ContextRequestID ContextKey = "request_id"
)

func UserIDFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ContextUserID).(int)
	return v, ok
}
