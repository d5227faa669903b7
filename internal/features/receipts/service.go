package receipts

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	audit_logs "receipthub/internal/features/audit_logs"
	businesses_services "receipthub/internal/features/businesses/services"
	users_enums "receipthub/internal/features/users/enums"
	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"

	"github.com/google/uuid"
)

type ReceiptService struct {
	receiptRepository *ReceiptRepository
	businessService   *businesses_services.BusinessService
	auditLogService   *audit_logs.AuditLogService
	logger            *slog.Logger
}

func (s *ReceiptService) CreateReceipt(
	businessID uuid.UUID,
	request *CreateReceiptRequestDTO,
	user *users_models.User,
	clientIP string,
) (*Receipt, error) {
	role, err := s.requireBusinessAccess(businessID, user)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		ID:           uuid.New(),
		BusinessID:   businessID,
		CollectionID: request.CollectionID,
		Merchant:     request.Merchant,
		AmountCents:  request.AmountCents,
		Currency:     strings.ToUpper(request.Currency),
		ReceiptDate:  request.ReceiptDate.UTC(),
		Status:       ReceiptStatusPending,
		Notes:        request.Notes,
		CreatedBy:    user.ID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.receiptRepository.Create(receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "receipt.create",
		ResourceType: "receipt",
		ResourceID:   receipt.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		After:        receipt.Snapshot(),
	})

	return receipt, nil
}

func (s *ReceiptService) GetReceipts(
	businessID uuid.UUID,
	request *ListReceiptsRequestDTO,
	user *users_models.User,
) (*ListReceiptsResponseDTO, error) {
	if _, err := s.requireBusinessAccess(businessID, user); err != nil {
		return nil, err
	}

	limit := request.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := max(request.Offset, 0)

	businessReceipts, err := s.receiptRepository.GetByBusiness(businessID, request.CollectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}

	return &ListReceiptsResponseDTO{Receipts: businessReceipts, Limit: limit, Offset: offset}, nil
}

func (s *ReceiptService) GetReceipt(
	receiptID uuid.UUID,
	user *users_models.User,
) (*Receipt, error) {
	receipt, err := s.receiptRepository.GetByID(receiptID)
	if err != nil {
		return nil, errors.New("receipt not found")
	}

	if _, err := s.requireBusinessAccess(receipt.BusinessID, user); err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *ReceiptService) UpdateReceipt(
	receiptID uuid.UUID,
	request *UpdateReceiptRequestDTO,
	user *users_models.User,
	clientIP string,
) (*Receipt, error) {
	receipt, err := s.receiptRepository.GetByID(receiptID)
	if err != nil {
		return nil, errors.New("receipt not found")
	}

	role, err := s.requireBusinessAccess(receipt.BusinessID, user)
	if err != nil {
		return nil, err
	}

	before := receipt.Snapshot()

	receipt.CollectionID = request.CollectionID
	receipt.Merchant = request.Merchant
	receipt.AmountCents = request.AmountCents
	receipt.Currency = strings.ToUpper(request.Currency)
	receipt.ReceiptDate = request.ReceiptDate.UTC()
	receipt.Notes = request.Notes
	receipt.UpdatedAt = time.Now().UTC()

	if err := s.receiptRepository.Update(receipt); err != nil {
		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "receipt.update",
		ResourceType: "receipt",
		ResourceID:   receipt.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &receipt.BusinessID,
		IPAddress:    clientIP,
		Before:       before,
		After:        receipt.Snapshot(),
	})

	return receipt, nil
}

// ChangeReceiptStatus moves a receipt through the approval flow. Only
// business managers and administrators may approve or reject.
func (s *ReceiptService) ChangeReceiptStatus(
	receiptID uuid.UUID,
	newStatus ReceiptStatus,
	user *users_models.User,
	clientIP string,
) (*Receipt, error) {
	if !newStatus.IsValid() {
		return nil, errors.New("invalid receipt status")
	}

	receipt, err := s.receiptRepository.GetByID(receiptID)
	if err != nil {
		return nil, errors.New("receipt not found")
	}

	canManage, err := s.businessService.CanUserManageBusiness(receipt.BusinessID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
			Action:       "receipt.change_status",
			ResourceType: "receipt",
			ResourceID:   receipt.ID.String(),
			Status:       users_interfaces.AuditStatusDenied,
			ActorUserID:  &user.ID,
			ActorRole:    string(user.Role),
			BusinessID:   &receipt.BusinessID,
			IPAddress:    clientIP,
			ErrorMessage: "actor cannot manage business",
		})

		return nil, errors.New("insufficient permissions to change receipt status")
	}

	before := receipt.Snapshot()

	receipt.Status = newStatus
	receipt.UpdatedAt = time.Now().UTC()

	if err := s.receiptRepository.Update(receipt); err != nil {
		return nil, fmt.Errorf("failed to change receipt status: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "receipt.change_status",
		ResourceType: "receipt",
		ResourceID:   receipt.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    string(user.Role),
		BusinessID:   &receipt.BusinessID,
		IPAddress:    clientIP,
		Before:       before,
		After:        receipt.Snapshot(),
	})

	return receipt, nil
}

func (s *ReceiptService) DeleteReceipt(
	receiptID uuid.UUID,
	user *users_models.User,
	clientIP string,
) error {
	receipt, err := s.receiptRepository.GetByID(receiptID)
	if err != nil {
		return errors.New("receipt not found")
	}

	role, err := s.requireBusinessAccess(receipt.BusinessID, user)
	if err != nil {
		return err
	}

	// Members may only delete their own receipts
	if user.Role != users_enums.UserRoleAdmin &&
		receipt.CreatedBy != user.ID &&
		role != string(users_enums.BusinessRoleOwner) &&
		role != string(users_enums.BusinessRoleAdmin) {
		return errors.New("insufficient permissions to delete receipt")
	}

	if err := s.receiptRepository.Delete(receiptID); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "receipt.delete",
		ResourceType: "receipt",
		ResourceID:   receipt.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &receipt.BusinessID,
		IPAddress:    clientIP,
		Before:       receipt.Snapshot(),
	})

	return nil
}

func (s *ReceiptService) requireBusinessAccess(
	businessID uuid.UUID,
	user *users_models.User,
) (string, error) {
	canAccess, role, err := s.businessService.CanUserAccessBusiness(businessID, user)
	if err != nil {
		return "", err
	}
	if !canAccess {
		return "", errors.New("insufficient permissions to access business")
	}

	if role != nil {
		return string(*role), nil
	}

	return string(user.Role), nil
}
