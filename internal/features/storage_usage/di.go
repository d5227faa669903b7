package storage_usage

import (
	"receipthub/internal/util/logger"
)

var storageUsageService = &StorageUsageService{
	logger: logger.GetLogger(),
}
var storageUsageController = &StorageUsageController{
	storageUsageService: storageUsageService,
}

func GetStorageUsageService() *StorageUsageService {
	return storageUsageService
}

func GetStorageUsageController() *StorageUsageController {
	return storageUsageController
}
