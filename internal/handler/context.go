package handler

type ContextKey string

var (
	IdentityCtx  ContextKey = "identity"
	RequesterCtx ContextKey = "requester"
	UserInfoCtx  ContextKey = "userInfo"
	RequestIDCtx ContextKey = "requestID"
)

// Identity is what a verified bearer token asserts about its holder.
type Identity struct {
	UserID  int64
	Email   string
	IsAdmin bool
}
