// Package loop drives a fixed-rate tick function until its context ends.
package loop

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrStop can be returned by a tick function to end the loop cleanly
var ErrStop = errors.New("loop stopped")

// Run calls tick rate times per second on the calling goroutine. It returns
// nil when ctx is cancelled or tick returns ErrStop, and any other tick
// error as is.
func Run(ctx context.Context, rate int, tick func() error) error {
	if rate <= 0 {
		return errors.Errorf("invalid tick rate %d", rate)
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := tick(); err != nil {
				if errors.Cause(err) == ErrStop {
					return nil
				}
				return err
			}
		}
	}
}
