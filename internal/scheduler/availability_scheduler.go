package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tabletap/tabletap-backend/internal/app/service"
	"github.com/tabletap/tabletap-backend/pkg/logger"
)

// AvailabilityScheduler keeps the cached open/closed flag of every
// active store fresh.
type AvailabilityScheduler struct {
	cron         *cron.Cron
	storeService service.StoreService
	spec         string
}

func NewAvailabilityScheduler(storeService service.StoreService, spec string) *AvailabilityScheduler {
	return &AvailabilityScheduler{
		cron:         cron.New(),
		storeService: storeService,
		spec:         spec,
	}
}

func (s *AvailabilityScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.storeService.RefreshOpenStatus(ctx); err != nil {
		logger.Error("Failed to refresh store open status", err, nil)
		return
	}

	logger.Debug("Store open status refreshed", nil)
}

func (s *AvailabilityScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		logger.Error("Failed to schedule store availability refresh", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	// Populate the cache right away instead of waiting for the first tick.
	go s.refresh()

	s.cron.Start()
	logger.Info("Store availability scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

func (s *AvailabilityScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Store availability scheduler stopped", nil)
}
