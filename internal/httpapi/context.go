package httpapi

import "context"

// serverBaseCtx is canceled on process shutdown so in-flight loads stop
// instead of outliving the listener. Defaults to Background.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled when either parent is done, so a
// load aborts on client disconnect and on shutdown alike. The cancel func
// must be called when the handler returns to release the watcher goroutine.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
