package receipts

import (
	audit_logs "receipthub/internal/features/audit_logs"
	businesses_services "receipthub/internal/features/businesses/services"
	"receipthub/internal/util/logger"
)

var receiptRepository = &ReceiptRepository{}
var receiptService = &ReceiptService{
	receiptRepository: receiptRepository,
	businessService:   businesses_services.GetBusinessService(),
	auditLogService:   audit_logs.GetAuditLogService(),
	logger:            logger.GetLogger(),
}
var receiptController = &ReceiptController{
	receiptService: receiptService,
}

func GetReceiptService() *ReceiptService {
	return receiptService
}

func GetReceiptController() *ReceiptController {
	return receiptController
}
