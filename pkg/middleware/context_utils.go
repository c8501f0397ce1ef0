package middleware

import (
	"context"
	"net/http"

	"company-service/pkg/jwtutil"
)

type contextKey string

const (
	ContextUserID    contextKey = "userID"
	ContextUserEmail contextKey = "userEmail"
	ContextToken     contextKey = "token"
)

func GetUserID(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(ContextUserID).(int64)
	return val, ok
}

func GetUserEmail(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextUserEmail).(string)
	return val, ok
}

func GetToken(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextToken).(string)
	return val, ok
}

func setContextValues(r *http.Request, claims *jwtutil.Claims, token string) *http.Request {
	ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
	ctx = context.WithValue(ctx, ContextUserEmail, claims.Email)
	ctx = context.WithValue(ctx, ContextToken, token)
	return r.WithContext(ctx)
}
