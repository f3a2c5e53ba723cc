package live

import (
	"log/slog"
	"sync"
	"time"

	"cricket-live-service/internal/logging"
	"cricket-live-service/internal/staleness"
	"cricket-live-service/internal/viewmodel"
)

const exportQueueSize = 32

// Store defines the contract for keeping the latest view model per match.
type Store interface {
	Put(vm viewmodel.ViewModel) bool
	Get(matchID string) (viewmodel.ViewModel, bool)
	List() []viewmodel.ViewModel
}

// Exporter writes accepted view models somewhere outside the process.
type Exporter interface {
	WriteView(vm viewmodel.ViewModel) error
}

// Service records emitted view models and serves them back with staleness recomputed.
type Service struct {
	store    Store
	exporter Exporter
	logger   *slog.Logger

	queue     chan viewmodel.ViewModel
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewService constructs a Service. The exporter is optional; when set, writes happen on a
// background worker so Publish never blocks the live pipeline.
func NewService(store Store, exporter Exporter, logger *slog.Logger) *Service {
	s := &Service{store: store, exporter: exporter, logger: logger}
	if exporter != nil {
		s.queue = make(chan viewmodel.ViewModel, exportQueueSize)
		s.wg.Add(1)
		go s.exportLoop()
	}
	return s
}

// Publish stores vm and queues it for export. Views older than the stored one are ignored.
func (s *Service) Publish(vm viewmodel.ViewModel) {
	if !s.store.Put(vm) || s.queue == nil {
		return
	}
	select {
	case s.queue <- vm:
	default:
		logging.Warn(s.logger, "view export queue full, dropping",
			logging.FieldMatchID, vm.MatchID,
			logging.FieldSequence, vm.Version,
		)
	}
}

// View returns the latest view for a match with staleness graded at now.
func (s *Service) View(matchID string, now time.Time) (viewmodel.ViewModel, bool) {
	vm, ok := s.store.Get(matchID)
	if !ok {
		return viewmodel.ViewModel{}, false
	}
	return regrade(vm, now), true
}

// Views returns every stored view with staleness graded at now.
func (s *Service) Views(now time.Time) []viewmodel.ViewModel {
	views := s.store.List()
	for i := range views {
		views[i] = regrade(views[i], now)
	}
	return views
}

// Close drains the export queue.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		if s.queue != nil {
			close(s.queue)
		}
	})
	s.wg.Wait()
}

func (s *Service) exportLoop() {
	defer s.wg.Done()
	for vm := range s.queue {
		if err := s.exporter.WriteView(vm); err != nil {
			logging.Error(s.logger, "view export failed", err, logging.FieldMatchID, vm.MatchID)
		}
	}
}

func regrade(vm viewmodel.ViewModel, now time.Time) viewmodel.ViewModel {
	vm.Staleness = staleness.Classify(vm.TimestampMs, now.UnixMilli())
	return vm
}
