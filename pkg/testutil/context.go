package testutil

import (
	"context"
	"time"

	id "roster/pkg/domain"
	"roster/pkg/requestcontext"
)

// ActorContext is a context carrying an authenticated actor, a fixed request
// time and a device label, the way the middleware chain leaves it.
func ActorContext(userID id.UserID, name string, now time.Time) context.Context {
	ctx := requestcontext.WithActor(context.Background(), requestcontext.ActorInfo{UserID: userID, Name: name})
	ctx = requestcontext.WithTime(ctx, now)
	ctx = requestcontext.WithRequestID(ctx, "test-request")
	return requestcontext.WithDevice(ctx, "Chrome 120 on Android")
}
