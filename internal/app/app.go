package app

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type App struct {
	runners []Runner
}

func New(runners ...Runner) *App {
	return &App{runners: runners}
}

// Run starts every runner and waits for all of them. SIGINT or SIGTERM
// cancels the shared context; so does the first runner that fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range a.runners {
		g.Go(func() error {
			return r.Run(ctx)
		})
	}
	return g.Wait()
}
