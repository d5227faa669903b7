package businesses_services

import (
	"receipthub/internal/cache"
	audit_logs "receipthub/internal/features/audit_logs"
	businesses_models "receipthub/internal/features/businesses/models"
	businesses_repositories "receipthub/internal/features/businesses/repositories"
	users_repositories "receipthub/internal/features/users/repositories"
	users_services "receipthub/internal/features/users/services"
	cache_utils "receipthub/internal/util/cache"
)

var businessRepository = &businesses_repositories.BusinessRepository{}
var membershipRepository = &businesses_repositories.MembershipRepository{}

var businessService = &BusinessService{
	businessRepository:   businessRepository,
	membershipRepository: membershipRepository,
	settingsService:      users_services.GetSettingsService(),
	auditLogService:      audit_logs.GetAuditLogService(),
	businessCacheUtil:    cache_utils.NewCacheUtil[businesses_models.Business](cache.GetCache(), "rh_business:"),
}

var membershipService = &MembershipService{
	membershipRepository: membershipRepository,
	userRepository:       &users_repositories.UserRepository{},
	businessService:      businessService,
	auditLogService:      audit_logs.GetAuditLogService(),
}

func GetBusinessService() *BusinessService {
	return businessService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
