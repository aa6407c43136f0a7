package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// StagedPhotoSweeper removes staged photos older than maxAge
type StagedPhotoSweeper interface {
	SweepStaged(ctx context.Context, maxAge time.Duration) (int, error)
}

// StagingSweeper periodically removes staged photos left behind by
// interrupted uploads
type StagingSweeper struct {
	photos   StagedPhotoSweeper
	interval time.Duration
	maxAge   time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewStagingSweeper creates a new staging sweeper job
func NewStagingSweeper(photos StagedPhotoSweeper, interval, maxAge time.Duration) *StagingSweeper {
	if interval == 0 {
		interval = 15 * time.Minute
	}
	if maxAge == 0 {
		maxAge = time.Hour
	}
	return &StagingSweeper{
		photos:   photos,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the sweep loop
func (s *StagingSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(stopCh)
	slog.Info("staging sweeper started",
		slog.Duration("interval", s.interval),
		slog.Duration("max_age", s.maxAge),
	)
}

// Stop stops the loop and waits for an in-flight sweep
func (s *StagingSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopCh := s.stopCh
	s.mu.Unlock()

	close(stopCh)
	s.wg.Wait()
	slog.Info("staging sweeper stopped")
}

func (s *StagingSweeper) run(stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-stopCh:
			return
		}
	}
}

func (s *StagingSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("staging sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		slog.Info("removed stale staged photos", slog.Int("count", removed))
	}
}

// RunOnce sweeps once (for testing or manual trigger)
func (s *StagingSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.photos.SweepStaged(ctx, s.maxAge)
}

// IsRunning returns whether the sweeper is running
func (s *StagingSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
