package system_healthcheck

import (
	"context"
	"fmt"
	"time"

	"receipthub/internal/cache"
	"receipthub/internal/features/storage_usage"
	"receipthub/internal/storage"
)

type HealthcheckService struct {
	storageUsageService *storage_usage.StorageUsageService
}

type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// GetHealth probes the database, the cache and the receipt volume.
// Any failed probe degrades the overall status.
func (s *HealthcheckService) GetHealth() *HealthStatus {
	checks := make(map[string]string)
	status := "ok"

	if err := s.checkDatabase(); err != nil {
		checks["database"] = err.Error()
		status = "degraded"
	} else {
		checks["database"] = "ok"
	}

	if err := s.checkCache(); err != nil {
		checks["cache"] = err.Error()
		status = "degraded"
	} else {
		checks["cache"] = "ok"
	}

	if s.storageUsageService.IsStorageCritical() {
		checks["storage"] = "receipt volume above 95% usage"
		status = "degraded"
	} else {
		checks["storage"] = "ok"
	}

	return &HealthStatus{Status: status, Checks: checks}
}

func (s *HealthcheckService) checkDatabase() error {
	db, err := storage.GetDb().DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) checkCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := cache.GetCache()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("cache ping failed: %w", err)
	}

	return nil
}
