package context

import (
	"context"

	"github.com/rahul4469/bizstart/internal/models"
)

type contextkey string

const (
	adminKey contextkey = "admin"
)

// ContextSetAdmin binds a verified admin session to ctx.
func ContextSetAdmin(ctx context.Context, session *models.AdminSession) context.Context {
	return context.WithValue(ctx, adminKey, session)
}

// ContextGetAdmin returns the admin session, or nil for public visitors.
func ContextGetAdmin(ctx context.Context) *models.AdminSession {
	val := ctx.Value(adminKey)
	session, ok := val.(*models.AdminSession)
	if !ok {
		return nil
	}
	return session
}
