package booking

import (
	"context"
	"fmt"
	"log/slog"
)

// bestEffort runs fn and logs, rather than returns, any error or panic it produces.
// It is the only place a calendar failure is discarded.
func bestEffort(ctx context.Context, logger *slog.Logger, op string, fn func(context.Context) error, attrs ...any) {
	var err error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
			}
		}()
		err = fn(ctx)
	}()
	if err == nil {
		return
	}
	logger.WarnContext(ctx, "calendar sync failed", append([]any{"op", op, "err", err}, attrs...)...)
}
