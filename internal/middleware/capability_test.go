package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/service"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
)

func newCapabilityRouter(cap models.Capability, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(ContextUserKey, claims)
			}
		},
		RequireCapability(cap),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func perform(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireCapabilityTeacherHasUser(t *testing.T) {
	r := newCapabilityRouter(models.CapabilityUser, &models.JWTClaims{Role: models.RoleTeacher})
	assert.Equal(t, http.StatusOK, perform(r, nil).Code)
}

func TestRequireCapabilityTeacherLacksAdmin(t *testing.T) {
	r := newCapabilityRouter(models.CapabilityAdmin, &models.JWTClaims{Role: models.RoleTeacher})
	assert.Equal(t, http.StatusForbidden, perform(r, nil).Code)
}

func TestRequireCapabilityAdminImpliesUser(t *testing.T) {
	r := newCapabilityRouter(models.CapabilityUser, &models.JWTClaims{Role: models.RoleAdmin})
	assert.Equal(t, http.StatusOK, perform(r, nil).Code)
}

func TestRequireCapabilityWithoutClaims(t *testing.T) {
	r := newCapabilityRouter(models.CapabilityUser, nil)
	assert.Equal(t, http.StatusUnauthorized, perform(r, nil).Code)
}

type validatorMock struct {
	claims *models.JWTClaims
	err    error
	token  string
}

func (m *validatorMock) ValidateToken(token string) (*models.JWTClaims, error) {
	m.token = token
	return m.claims, m.err
}

func TestJWTAuthStoresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockValidator := &validatorMock{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}}

	r := gin.New()
	r.GET("/guarded", JWTAuth(mockValidator), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer token123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token123", mockValidator.token)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", JWTAuth(&validatorMock{err: appErrors.ErrUnauthorized}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type headerAuthMock struct {
	claims  *models.JWTClaims
	err     error
	profile *service.IServProfile
}

func (m *headerAuthMock) SyncFromHeaders(ctx context.Context, profile *service.IServProfile) (*models.JWTClaims, error) {
	m.profile = profile
	return m.claims, m.err
}

func TestIServBridgeAuthenticatesFromHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockAuth := &headerAuthMock{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher}}

	r := gin.New()
	r.GET("/guarded", IServBridge(mockAuth, nil), RequireCapability(models.CapabilityUser), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, map[string]string{
		HeaderIServUser:      "mmuster",
		HeaderIServFirstname: "Maria",
		HeaderIServLastname:  "Muster",
		HeaderIServGroups:    "lehrer, klasse-5a",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockAuth.profile)
	assert.Equal(t, "mmuster", mockAuth.profile.Username)
	assert.Equal(t, []string{"lehrer", "klasse-5a"}, mockAuth.profile.Groups)
}

func TestIServBridgeFallsThroughWithoutHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockAuth := &headerAuthMock{}

	r := gin.New()
	r.GET("/guarded", IServBridge(mockAuth, nil), func(c *gin.Context) {
		_, ok := ClaimsFromContext(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := perform(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockAuth.profile)
}

func TestIServBridgeRejectsUnknownGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockAuth := &headerAuthMock{err: appErrors.ErrForbidden}

	r := gin.New()
	r.GET("/guarded", IServBridge(mockAuth, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, map[string]string{HeaderIServUser: "schueler"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
