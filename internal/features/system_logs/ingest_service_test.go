package system_logs

import (
	"strings"
	"testing"

	businesses_models "receipthub/internal/features/businesses/models"
	"receipthub/internal/util/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidationTestService() *ClientEventService {
	return &ClientEventService{
		logger:     logger.GetLogger(),
		ipLimiters: map[string]*ipLimiterEntry{},
	}
}

func Test_ValidateEvent_WithServerSideCategory_ReturnsCategoryNotAllowed(t *testing.T) {
	service := createValidationTestService()

	event := &ClientEventRequestDTO{
		Level:    LogLevelError,
		Category: CategorySecurity,
		Message:  "attempted privilege escalation",
	}

	err := service.validateEvent(event, 100)

	require.Error(t, err)
	validationErr, isOk := err.(*ValidationError)
	require.True(t, isOk)
	assert.Equal(t, ErrorCategoryNotAllowed, validationErr.Code)
}

func Test_ValidateEvent_WithClientCategories_Passes(t *testing.T) {
	service := createValidationTestService()

	for _, category := range []LogCategory{
		CategoryClientError, CategoryPageView, CategoryNavigation, CategoryPerformance,
	} {
		event := &ClientEventRequestDTO{
			Level:    LogLevelInfo,
			Category: category,
			Message:  "viewed /receipts",
		}

		assert.NoError(t, service.validateEvent(event, 100), string(category))
	}
}

func Test_ValidateEvent_RejectsInvalidLevelEmptyMessageAndOversize(t *testing.T) {
	service := createValidationTestService()

	err := service.validateEvent(&ClientEventRequestDTO{
		Level:    "TRACE",
		Category: CategoryClientError,
		Message:  "boom",
	}, 100)
	require.Error(t, err)
	assert.Equal(t, ErrorInvalidLogLevel, err.(*ValidationError).Code)

	err = service.validateEvent(&ClientEventRequestDTO{
		Level:    LogLevelError,
		Category: CategoryClientError,
		Message:  "   ",
	}, 100)
	require.Error(t, err)
	assert.Equal(t, ErrorMessageEmpty, err.(*ValidationError).Code)

	err = service.validateEvent(&ClientEventRequestDTO{
		Level:    LogLevelError,
		Category: CategoryClientError,
		Message:  strings.Repeat("x", 64),
	}, MaxEventSizeBytes+1)
	require.Error(t, err)
	assert.Equal(t, ErrorEventTooLarge, err.(*ValidationError).Code)
}

func Test_ValidateBatchLimits_UsesBusinessMaxAndRejectsEmpty(t *testing.T) {
	service := createValidationTestService()
	business := &businesses_models.Business{MaxEventsPerBatch: 2}

	err := service.validateBatchLimits(&SubmitClientEventsRequestDTO{}, business)
	require.Error(t, err)
	assert.Equal(t, ErrorBatchEmpty, err.(*ValidationError).Code)

	events := make([]ClientEventRequestDTO, 3)
	err = service.validateBatchLimits(&SubmitClientEventsRequestDTO{Events: events}, business)
	require.Error(t, err)
	assert.Equal(t, ErrorBatchTooLarge, err.(*ValidationError).Code)

	err = service.validateBatchLimits(
		&SubmitClientEventsRequestDTO{Events: events[:2]}, business)
	assert.NoError(t, err)
}

func Test_AllowIP_EnforcesBurstPerAddress(t *testing.T) {
	service := createValidationTestService()

	for i := 0; i < perIPBurst; i++ {
		assert.True(t, service.allowIP("203.0.113.7"))
	}

	assert.False(t, service.allowIP("203.0.113.7"))

	// Other addresses have their own bucket
	assert.True(t, service.allowIP("203.0.113.8"))
}

func Test_LogCategory_ClientSubmittableSubset(t *testing.T) {
	assert.True(t, CategoryClientError.IsClientSubmittable())
	assert.True(t, CategoryPageView.IsClientSubmittable())
	assert.False(t, CategoryAuth.IsClientSubmittable())
	assert.False(t, CategoryDatabase.IsClientSubmittable())
	assert.False(t, LogCategory("BOGUS").IsValid())
	assert.True(t, LogLevelCritical.IsValid())
	assert.False(t, LogLevel("trace").IsValid())
}
