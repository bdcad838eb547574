package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserNameKey contextKey = "user_name"
	RoleKey     contextKey = "role"
)

// CallerIdentity is the authenticated caller of a mock API request.
type CallerIdentity struct {
	ID   string
	Name string
	Role string
}

func SetUserContext(ctx context.Context, caller CallerIdentity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, caller.ID)
	ctx = context.WithValue(ctx, UserNameKey, caller.Name)
	ctx = context.WithValue(ctx, RoleKey, caller.Role)
	return ctx
}

func GetUserFromContext(ctx context.Context) (CallerIdentity, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	if !ok || id == "" {
		return CallerIdentity{}, false
	}
	name, _ := ctx.Value(UserNameKey).(string)
	role, _ := ctx.Value(RoleKey).(string)
	return CallerIdentity{ID: id, Name: name, Role: role}, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}
