package collections

import (
	audit_logs "receipthub/internal/features/audit_logs"
	businesses_services "receipthub/internal/features/businesses/services"
	"receipthub/internal/util/logger"
)

var collectionRepository = &CollectionRepository{}
var collectionService = &CollectionService{
	collectionRepository: collectionRepository,
	businessService:      businesses_services.GetBusinessService(),
	auditLogService:      audit_logs.GetAuditLogService(),
	logger:               logger.GetLogger(),
}
var collectionController = &CollectionController{
	collectionService: collectionService,
}

func GetCollectionService() *CollectionService {
	return collectionService
}

func GetCollectionController() *CollectionController {
	return collectionController
}
