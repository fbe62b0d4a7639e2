package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the portal's backing services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	AuthCache bool      `json:"authCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings Mongo and the auth cache on an interval and keeps
// the snapshot current for the health endpoint.
func StartHealthMonitor(mongoClient *mongo.Client, authCache *redis.Client) {
	probe := func(ctx context.Context) {
		mongoHealthy := mongoClient.Ping(ctx, nil) == nil
		cacheHealthy := authCache != nil && authCache.Ping(ctx).Err() == nil

		healthMu.Lock()
		currentHealth = HealthStatus{
			Mongo:     mongoHealthy,
			AuthCache: cacheHealthy,
			CheckedAt: time.Now(),
		}
		healthMu.Unlock()
	}

	go func() {
		ctx := context.Background()
		probe(ctx)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			probe(ctx)
		}
	}()
}
