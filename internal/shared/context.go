package shared

import (
	"context"
	"strings"
)

type sessionKey struct{}

// ContextWithSession returns ctx carrying sess for the rest of the request.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the request session, or nil outside the
// session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}

// SignedInUser reports the operator name stored in the request session.
func SignedInUser(ctx context.Context) (string, bool) {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return "", false
	}
	user := strings.TrimSpace(sess.User())
	return user, user != ""
}
