package git

import "context"

type operationKey struct{}

// WithOperation marks ctx as running the named stacktrack operation. Git
// commands run with this context export the marker to hooks they trigger.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey{}, name)
}

// OperationFrom returns the operation marked on ctx, or "" if none
func OperationFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	name, _ := ctx.Value(operationKey{}).(string)
	return name
}
