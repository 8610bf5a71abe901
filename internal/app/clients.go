package app

import (
	"fmt"
	"os"

	"github.com/campuscore/campuscore-backend/internal/clients/gcs"
	"github.com/campuscore/campuscore-backend/internal/clients/redis"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type Clients struct {
	Bucket       gcs.BucketService
	PendingLogin redis.PendingLoginStore
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bucket service: %w", err)
	}

	var pending redis.PendingLoginStore
	if os.Getenv("REDIS_ADDR") != "" {
		pending, err = redis.NewPendingLoginStore(log, cfg.PendingLoginTTL)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis pending login store: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory pending login store")
		pending = redis.NewMemoryPendingLoginStore(cfg.PendingLoginTTL)
	}

	return Clients{Bucket: bucket, PendingLogin: pending}, nil
}
