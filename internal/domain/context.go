package domain

import "context"

type operatorKey struct{}

// ContextOperator carries the authenticated identity through request context.
type ContextOperator struct {
	Nickname string
	IsAdmin  bool
}

// WithOperator stores a ContextOperator in the context.
func WithOperator(ctx context.Context, op ContextOperator) context.Context {
	return context.WithValue(ctx, operatorKey{}, op)
}

// OperatorFromContext extracts the ContextOperator from the context.
func OperatorFromContext(ctx context.Context) (ContextOperator, bool) {
	op, ok := ctx.Value(operatorKey{}).(ContextOperator)
	return op, ok
}
