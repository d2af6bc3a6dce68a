package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxCompanyID contextKey = "company_id"
	ctxRole      contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func CompanyIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCompanyID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithIdentity seeds the context with the authenticated actor, used by
// handlers and tests that bypass the Auth middleware.
func WithIdentity(ctx context.Context, userID, companyID, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxCompanyID, companyID)
	return context.WithValue(ctx, ctxRole, role)
}
