package collections

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit_logs "receipthub/internal/features/audit_logs"
	businesses_services "receipthub/internal/features/businesses/services"
	users_interfaces "receipthub/internal/features/users/interfaces"
	users_models "receipthub/internal/features/users/models"

	"github.com/google/uuid"
)

type CollectionService struct {
	collectionRepository *CollectionRepository
	businessService      *businesses_services.BusinessService
	auditLogService      *audit_logs.AuditLogService
	logger               *slog.Logger
}

func (s *CollectionService) CreateCollection(
	businessID uuid.UUID,
	request *CreateCollectionRequestDTO,
	user *users_models.User,
	clientIP string,
) (*Collection, error) {
	role, err := s.requireBusinessAccess(businessID, user)
	if err != nil {
		return nil, err
	}

	collection := &Collection{
		ID:          uuid.New(),
		BusinessID:  businessID,
		Name:        request.Name,
		Description: request.Description,
		CreatedBy:   user.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.collectionRepository.Create(collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "collection.create",
		ResourceType: "collection",
		ResourceID:   collection.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &businessID,
		IPAddress:    clientIP,
		After:        collection.Snapshot(),
	})

	return collection, nil
}

func (s *CollectionService) GetCollections(
	businessID uuid.UUID,
	user *users_models.User,
) (*ListCollectionsResponseDTO, error) {
	if _, err := s.requireBusinessAccess(businessID, user); err != nil {
		return nil, err
	}

	businessCollections, err := s.collectionRepository.GetByBusiness(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collections: %w", err)
	}

	return &ListCollectionsResponseDTO{Collections: businessCollections}, nil
}

func (s *CollectionService) GetCollection(
	collectionID uuid.UUID,
	user *users_models.User,
) (*Collection, error) {
	collection, err := s.collectionRepository.GetByID(collectionID)
	if err != nil {
		return nil, errors.New("collection not found")
	}

	if _, err := s.requireBusinessAccess(collection.BusinessID, user); err != nil {
		return nil, err
	}

	return collection, nil
}

func (s *CollectionService) UpdateCollection(
	collectionID uuid.UUID,
	request *UpdateCollectionRequestDTO,
	user *users_models.User,
	clientIP string,
) (*Collection, error) {
	collection, err := s.collectionRepository.GetByID(collectionID)
	if err != nil {
		return nil, errors.New("collection not found")
	}

	role, err := s.requireBusinessAccess(collection.BusinessID, user)
	if err != nil {
		return nil, err
	}

	before := collection.Snapshot()

	collection.Name = request.Name
	collection.Description = request.Description
	collection.UpdatedAt = time.Now().UTC()

	if err := s.collectionRepository.Update(collection); err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "collection.update",
		ResourceType: "collection",
		ResourceID:   collection.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &collection.BusinessID,
		IPAddress:    clientIP,
		Before:       before,
		After:        collection.Snapshot(),
	})

	return collection, nil
}

func (s *CollectionService) DeleteCollection(
	collectionID uuid.UUID,
	user *users_models.User,
	clientIP string,
) error {
	collection, err := s.collectionRepository.GetByID(collectionID)
	if err != nil {
		return errors.New("collection not found")
	}

	role, err := s.requireBusinessAccess(collection.BusinessID, user)
	if err != nil {
		return err
	}

	if err := s.collectionRepository.Delete(collectionID); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	s.auditLogService.WriteAuditLog(&users_interfaces.AuditEvent{
		Action:       "collection.delete",
		ResourceType: "collection",
		ResourceID:   collection.ID.String(),
		Status:       users_interfaces.AuditStatusSuccess,
		ActorUserID:  &user.ID,
		ActorRole:    role,
		BusinessID:   &collection.BusinessID,
		IPAddress:    clientIP,
		Before:       collection.Snapshot(),
	})

	return nil
}

func (s *CollectionService) requireBusinessAccess(
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
