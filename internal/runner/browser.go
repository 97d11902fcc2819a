package runner

import (
	"context"

	"github.com/pkg/browser"

	"github.com/runpadhq/runpad/internal/pkg/logs"
)

// openBrowserIfNeeded is best-effort: a machine without a browser is
// not a failed run.
func openBrowserIfNeeded(ctx context.Context, url string) {
	if err := browser.OpenURL(url); err != nil {
		logs.CtxWarn(ctx, "can't open browser for %s: %v", url, err)
	}
}
