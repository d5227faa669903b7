package audit_logs

import (
	"encoding/json"
	"testing"

	users_enums "receipthub/internal/features/users/enums"
	users_models "receipthub/internal/features/users/models"
	"receipthub/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetGlobalAuditLogs_AsMember_ReturnsForbiddenError(t *testing.T) {
	service := &AuditLogService{logger: logger.GetLogger()}
	member := &users_models.User{ID: uuid.New(), Role: users_enums.UserRoleMember}

	response, err := service.GetGlobalAuditLogs(member, &GetAuditLogsRequest{Limit: 10})

	assert.Nil(t, response)
	require.Error(t, err)
	assert.Equal(t, "only administrators can view global audit logs", err.Error())
}

func Test_GetUserAuditLogs_MemberViewingAnotherUser_ReturnsForbiddenError(t *testing.T) {
	service := &AuditLogService{logger: logger.GetLogger()}
	member := &users_models.User{ID: uuid.New(), Role: users_enums.UserRoleMember}

	response, err := service.GetUserAuditLogs(member, uuid.New(), &GetAuditLogsRequest{})

	assert.Nil(t, response)
	require.Error(t, err)
	assert.Equal(t, "you can only view your own audit logs", err.Error())
}

func Test_GetBusinessAuditLogs_MemberWithoutAccess_ReturnsForbiddenError(t *testing.T) {
	service := &AuditLogService{logger: logger.GetLogger()}
	member := &users_models.User{ID: uuid.New(), Role: users_enums.UserRoleMember}

	response, err := service.GetBusinessAuditLogs(member, uuid.New(), false, &GetAuditLogsRequest{})

	assert.Nil(t, response)
	require.Error(t, err)
	assert.Equal(t, "insufficient permissions to view business audit logs", err.Error())
}

func Test_NormalizePage_ClampsOutOfRangeValues(t *testing.T) {
	limit, offset := normalizePage(&GetAuditLogsRequest{Limit: 0, Offset: -5})
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, offset)

	limit, offset = normalizePage(&GetAuditLogsRequest{Limit: 5000, Offset: 30})
	assert.Equal(t, 100, limit)
	assert.Equal(t, 30, offset)

	limit, offset = normalizePage(&GetAuditLogsRequest{Limit: 250, Offset: 10})
	assert.Equal(t, 250, limit)
	assert.Equal(t, 10, offset)
}

func Test_MarshalSnapshot_PreservesFieldsAndHandlesNil(t *testing.T) {
	log := logger.GetLogger()

	assert.Nil(t, marshalSnapshot(nil, log))

	payload := marshalSnapshot(map[string]any{"name": "Acme", "currency": "USD"}, log)
	require.NotNil(t, payload)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "Acme", decoded["name"])
	assert.Equal(t, "USD", decoded["currency"])
}
