package wizard

import (
	"context"

	"github.com/felix3322/potplayer-translate-installer/internal/install"
	"github.com/felix3322/potplayer-translate-installer/internal/prompt"
)

// Install runs req on its own goroutine and serves its progress and questions
// through d until the run finishes. The error is non-nil only when d stopped
// answering; the outcome is always complete.
func Install(ctx context.Context, req install.Request, opts install.Options, d prompt.Driver) (install.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	link := prompt.NewLink()
	done := install.Start(ctx, req, opts, link)
	_, _, err := prompt.Serve(ctx, link, d)
	return <-done, err
}
