package audit_logs

import (
	users_services "receipthub/internal/features/users/services"
	cache_utils "receipthub/internal/util/cache"
	"receipthub/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{
	pubSub: cache_utils.NewPubSubService(),
	logger: logger.GetLogger(),
}
var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
	logger:             logger.GetLogger(),
}
var auditLogController = &AuditLogController{
	auditLogService: auditLogService,
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogRepository() *AuditLogRepository {
	return auditLogRepository
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}

func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	users_services.GetSettingsService().SetAuditLogWriter(auditLogService)
	users_services.GetManagementService().SetAuditLogWriter(auditLogService)
}
