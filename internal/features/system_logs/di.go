package system_logs

import (
	businesses_services "receipthub/internal/features/businesses/services"
	users_services "receipthub/internal/features/users/services"
	cache_utils "receipthub/internal/util/cache"
	"receipthub/internal/util/logger"
	rate_limit "receipthub/internal/util/rate_limit"
)

var systemLogRepository = &SystemLogRepository{
	pubSub: cache_utils.NewPubSubService(),
	logger: logger.GetLogger(),
}

var systemLogService = &SystemLogService{
	systemLogRepository: systemLogRepository,
	logger:              logger.GetLogger(),
}

var systemLogWorkerService = NewSystemLogWorkerService(
	systemLogRepository,
	logger.GetLogger(),
)

var clientEventService = &ClientEventService{
	businessService: businesses_services.GetBusinessService(),
	rateLimiter:     rate_limit.NewRateLimiter(),
	workerService:   systemLogWorkerService,
	logger:          logger.GetLogger(),
	ipLimiters:      map[string]*ipLimiterEntry{},
}

var retentionService = &RetentionService{
	systemLogRepository: systemLogRepository,
	logger:              logger.GetLogger(),
}

var systemLogController = &SystemLogController{
	systemLogService:   systemLogService,
	clientEventService: clientEventService,
	userService:        users_services.GetUserService(),
}

func GetSystemLogService() *SystemLogService {
	return systemLogService
}

func GetSystemLogRepository() *SystemLogRepository {
	return systemLogRepository
}

func GetSystemLogWorkerService() *SystemLogWorkerService {
	return systemLogWorkerService
}

func GetRetentionService() *RetentionService {
	return retentionService
}

func GetSystemLogController() *SystemLogController {
	return systemLogController
}
