package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

// HealthSnapshot is the live view: the current sample plus recent history.
type HealthSnapshot struct {
	Status      string                   `json:"status"`
	DBStatus    string                   `json:"dbStatus"`
	MemoryUsage float64                  `json:"memoryUsage"`
	CPUUsage    float64                  `json:"cpuUsage"`
	Uptime      string                   `json:"uptime"`
	Timestamp   time.Time                `json:"timestamp"`
	History     []*types.SystemHealthLog `json:"history"`
}

type SystemHealthService interface {
	// Snapshot samples the host and returns the current state without
	// persisting it.
	Snapshot(ctx context.Context) (*HealthSnapshot, error)
	// Sample takes one measurement and appends it to the health log.
	Sample(ctx context.Context) error
	// Start samples on a fixed interval until ctx is cancelled.
	Start(ctx context.Context, interval time.Duration)
}

type systemHealthService struct {
	db      *gorm.DB
	log     *logger.Logger
	logRepo repos.SystemHealthLogRepo
}

func NewSystemHealthService(db *gorm.DB, baseLog *logger.Logger, logRepo repos.SystemHealthLogRepo) SystemHealthService {
	return &systemHealthService{
		db:      db,
		log:     baseLog.With("service", "SystemHealthService"),
		logRepo: logRepo,
	}
}

func (hs *systemHealthService) measure(ctx context.Context) *types.SystemHealthLog {
	entry := &types.SystemHealthLog{
		ID:        uuid.New(),
		Status:    "OK",
		DBStatus:  "connected",
		Timestamp: time.Now().UTC(),
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		entry.MemoryUsage = vm.UsedPercent
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		entry.CPUUsage = avg.Load1
	}

	sqlDB, err := hs.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		entry.Status = "DEGRADED"
		entry.DBStatus = "disconnected"
	}
	return entry
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%dh%dm%ds",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60)
}

func (hs *systemHealthService) Snapshot(ctx context.Context) (*HealthSnapshot, error) {
	entry := hs.measure(ctx)

	var uptime string
	if secs, err := host.UptimeWithContext(ctx); err == nil {
		uptime = formatUptime(secs)
	}

	history, err := hs.logRepo.GetLatest(ctx, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("load health history: %w", err)
	}

	return &HealthSnapshot{
		Status:      entry.Status,
		DBStatus:    entry.DBStatus,
		MemoryUsage: entry.MemoryUsage,
		CPUUsage:    entry.CPUUsage,
		Uptime:      uptime,
		Timestamp:   entry.Timestamp,
		History:     history,
	}, nil
}

func (hs *systemHealthService) Sample(ctx context.Context) error {
	entry := hs.measure(ctx)
	if _, err := hs.logRepo.Create(ctx, nil, []*types.SystemHealthLog{entry}); err != nil {
		return fmt.Errorf("record health sample: %w", err)
	}
	hs.log.Debug("Health sample recorded",
		"status", entry.Status,
		"db_status", entry.DBStatus,
		"memory_pct", entry.MemoryUsage,
		"load1", entry.CPUUsage)
	return nil
}

func (hs *systemHealthService) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := hs.Sample(ctx); err != nil {
					hs.log.Warn("Health sample failed", "error", err)
				}
			}
		}
	}()
}
