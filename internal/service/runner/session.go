package runner

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oshokin/tickstack/internal/api/grpc/control"
	"github.com/oshokin/tickstack/internal/domain/workout"
	"github.com/oshokin/tickstack/internal/logger"
	"github.com/oshokin/tickstack/internal/repository/journal"
	"github.com/oshokin/tickstack/internal/timeline"
)

// screen shows the progress of a run.
type screen interface {
	// Show renders a status snapshot. It must not block.
	Show(status *workout.Status)
	// Finish reports the end of the run; Run returns soon after.
	Finish(completed bool)
	// Run blocks until the screen is closed or ctx is done.
	Run(ctx context.Context) error
}

// session ties one timeline run to its screen, control endpoint and journal.
type session struct {
	timeline *timeline.Timeline
	service  *service
	screen   screen
	listener net.Listener
	// journal is optional.
	journal journal.Repository
}

// run blocks until the routine is done and the screen closed, or the screen
// is closed early, or ctx is done. An aborted routine is not an error.
func (s *session) run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Every state goes to the screen together with the step position.
	s.timeline.OnStateChange(func(workout.State) {
		s.screen.Show(s.timeline.Status())
	})

	grpcServer := grpc.NewServer()
	control.RegisterControlServiceServer(grpcServer, control.NewServer(s.service))

	g, gctx := errgroup.WithContext(runCtx)

	// Serve remote next requests until the run is over.
	g.Go(func() error {
		go func() {
			<-gctx.Done()
			grpcServer.GracefulStop()
		}()

		logger.InfoKV(ctx, "Control endpoint listening", "listen_address", s.listener.Addr().String())

		if err := grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	// Run the routine; the screen decides when to close after Finish.
	g.Go(func() error {
		err := s.timeline.Run(gctx)
		completed := err == nil

		s.screen.Finish(completed)
		s.save(ctx, completed)

		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("run timeline: %w", err)
		}

		return nil
	})

	// Closing the screen ends everything else.
	g.Go(func() error {
		defer cancel()

		return s.screen.Run(gctx)
	})

	return g.Wait()
}

// save appends the run to the journal. Failures are logged only.
func (s *session) save(ctx context.Context, completed bool) {
	record := s.service.record(completed)

	logger.InfoKV(
		ctx,
		"Routine finished",
		"completed", record.Completed,
		"steps_done", record.StepsDone,
		"step_count", record.StepCount,
		"skips", len(record.Skips),
		"duration", record.Duration(),
	)

	if s.journal == nil {
		return
	}

	if err := s.journal.Append(ctx, record); err != nil {
		logger.WarnKV(ctx, "Failed to write run journal", "error", err)
	}
}
