package system_healthcheck

import (
	"receipthub/internal/features/storage_usage"
)

var healthcheckService = &HealthcheckService{
	storage_usage.GetStorageUsageService(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
