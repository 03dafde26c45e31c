package cli

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/minitree/internal/explorer"
)

// dispatchStream runs the walk and the renderer as a producer and a consumer joined by an unbuffered channel.
// The first failure on either side cancels the other.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- explorer.Entry) error,
	consume func(explorer.Entry) error,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	group, streamCtx := errgroup.WithContext(ctx)
	entries := make(chan explorer.Entry)

	group.Go(func() error {
		defer close(entries)
		return produce(streamCtx, entries)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case entry, ok := <-entries:
				if !ok {
					return nil
				}
				if err := consume(entry); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	}
	return nil
}
