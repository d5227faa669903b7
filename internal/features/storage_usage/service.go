package storage_usage

import (
	"fmt"
	"log/slog"

	"receipthub/internal/config"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// StorageUsageService reports capacity of the volume holding receipt files
// plus host memory pressure, so operators see problems before uploads fail.
type StorageUsageService struct {
	logger *slog.Logger
}

type StorageUsageReport struct {
	Path              string  `json:"path"`
	TotalBytes        uint64  `json:"totalBytes"`
	UsedBytes         uint64  `json:"usedBytes"`
	FreeBytes         uint64  `json:"freeBytes"`
	UsedPercent       float64 `json:"usedPercent"`
	MemoryTotalBytes  uint64  `json:"memoryTotalBytes"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
}

func (s *StorageUsageService) GetUsage() (*StorageUsageReport, error) {
	storagePath := config.GetEnv().ReceiptStoragePath
	if storagePath == "" {
		storagePath = "/"
	}

	usage, err := disk.Usage(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	report := &StorageUsageReport{
		Path:        storagePath,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}

	memory, err := mem.VirtualMemory()
	if err != nil {
		s.logger.Warn("failed to read memory stats", slog.String("error", err.Error()))
		return report, nil
	}

	report.MemoryTotalBytes = memory.Total
	report.MemoryUsedPercent = memory.UsedPercent

	return report, nil
}

// IsStorageCritical reports whether the receipt volume is nearly full.
func (s *StorageUsageService) IsStorageCritical() bool {
	report, err := s.GetUsage()
	if err != nil {
		s.logger.Error("failed to check storage usage", slog.String("error", err.Error()))
		return false
	}

	return report.UsedPercent >= 95
}
