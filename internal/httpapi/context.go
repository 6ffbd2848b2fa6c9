package httpapi

import "context"

func contextWithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func contextWithConnection(ctx context.Context, connection string) context.Context {
	return context.WithValue(ctx, connectionKey{}, connection)
}

func identityFromContext(ctx context.Context) string {
	v, _ := ctx.Value(identityKey{}).(string)
	return v
}

func connectionFromContext(ctx context.Context) string {
	v, _ := ctx.Value(connectionKey{}).(string)
	return v
}
