package httpapi

import (
	"context"

	"github.com/NachoSamo/SamoScore/internal/domain/user"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	accessTokenContextKey contextKey = "auth_access_token"
)

func withPrincipal(ctx context.Context, p user.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, principalContextKey, p)
	return context.WithValue(ctx, accessTokenContextKey, token)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func accessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenContextKey).(string)
	return token
}
