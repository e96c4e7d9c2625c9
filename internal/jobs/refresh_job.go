package jobs

import (
	"log"
	"time"

	"insider-watch/internal/services"
)

// RefreshJob keeps the monitor and earnings caches warm so the first
// request after a quiet period does not pay the full fetch latency.
// Both refresh paths go through their coordinators, so the job never
// fetches more often than the TTLs allow.
type RefreshJob struct {
	monitor  *services.MonitorService
	earnings *services.EarningsService
}

func NewRefreshJob(monitor *services.MonitorService, earnings *services.EarningsService) *RefreshJob {
	return &RefreshJob{monitor: monitor, earnings: earnings}
}

// Start begins the periodic refresh job
func (j *RefreshJob) Start(interval time.Duration) {
	go func() {
		// Warm the caches immediately on start
		j.monitor.RefreshIfStale()
		j.earnings.RefreshIfStale()
		log.Printf("[RefreshJob] started with interval %s", interval)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			j.monitor.RefreshIfStale()
			j.earnings.RefreshIfStale()
		}
	}()
}
