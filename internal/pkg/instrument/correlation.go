package instrument

import "context"

type correlationKey struct{}

// SetCorrelationID stores the request/message correlation id in ctx.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cid)
}

// GetCorrelationID returns the id stored by SetCorrelationID, or "" when absent.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cid, _ := ctx.Value(correlationKey{}).(string)
	return cid
}
