package supervisor

import (
	"companion/app/config"
	"context"
	"log/slog"
	"time"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// restartDelay guards against a tight crash loop. Intentionally fixed, a
// crash loop should stay operator-visible instead of being backed off into
// silence.
const restartDelay = time.Second

type Service struct {
	cfg          *config.Config
	restartDelay time.Duration
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:          do.MustInvoke[*config.Config](di),
		restartDelay: restartDelay,
	}, nil
}

// Run drives the liveness server and the child restart loop as two
// independent units until ctx is cancelled, then waits for both to stop.
func (s *Service) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	health := NewHealth(s.cfg.Supervisor.Port)

	group.Go(func() error {
		return health.Run(ctx)
	})

	group.Go(func() error {
		return s.runChildLoop(ctx)
	})

	return group.Wait()
}

func (s *Service) runChildLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.runChildOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.restartDelay):
		}
	}
}

func (s *Service) runChildOnce(ctx context.Context) {
	child, err := NewChild(ctx, s.cfg.Supervisor.Command)
	if err != nil {
		slog.Error("Failed to create child process", "error", err)
		return
	}

	if err = child.Start(); err != nil {
		slog.Error("Failed to start child process", "error", err)
		return
	}

	slog.Info("Child process started", "command", s.cfg.Supervisor.Command)

	err = child.Wait()

	if ctx.Err() != nil {
		return
	}

	slog.Warn("Child process exited",
		"code", child.ExitCode(),
		"error", err)
}
