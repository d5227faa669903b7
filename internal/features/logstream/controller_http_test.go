package logstream

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	users_enums "receipthub/internal/features/users/enums"
	users_models "receipthub/internal/features/users/models"
	"receipthub/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRouter(user *users_models.User, service *LogStreamService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/api/v1")
	group.Use(func(ctx *gin.Context) {
		ctx.Set("user", user)
		ctx.Next()
	})

	controller := &LogStreamController{logStreamService: service}
	controller.RegisterRoutes(group)

	return router
}

func createAdminViewerSession(t *testing.T) (*gin.Engine, *ViewerSession) {
	t.Helper()

	admin := &users_models.User{
		ID:     uuid.New(),
		Email:  "admin@test.com",
		Role:   users_enums.UserRoleAdmin,
		Status: users_enums.UserStatusActive,
	}

	source := &fakeSource{initial: []*LogRecord{
		makeAuditRecord("receipt.create", "success", time.Now().UTC()),
	}}
	service := NewLogStreamService(
		func(RecordKind) LogSource { return source },
		&fakeResolver{},
		logger.GetLogger(),
	)

	session, err := service.OpenSession(admin, RecordKindAudit)
	require.NoError(t, err)

	return createTestRouter(admin, service), session
}

func Test_GetPage_WithValidPageParam_ReturnsPage(t *testing.T) {
	router, session := createAdminViewerSession(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/api/v1/log-streams/"+session.ID.String()+"/page?page=1", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func Test_GetPage_WithTrailingGarbagePageParam_Returns400(t *testing.T) {
	router, session := createAdminViewerSession(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/api/v1/log-streams/"+session.ID.String()+"/page?page=3abc", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func Test_GetPage_WithNonNumericPageParam_Returns400(t *testing.T) {
	router, session := createAdminViewerSession(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/api/v1/log-streams/"+session.ID.String()+"/page?page=abc", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
