package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
)

// stubAccounts serves a fixed set of accounts by ID.
type stubAccounts struct {
	byID map[string]*entity.Account
}

func (s *stubAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubAccounts) Create(context.Context, *entity.Account) error { return nil }
func (s *stubAccounts) GetByEmail(context.Context, string) (*entity.Account, error) {
	return nil, repository.ErrNotFound
}
func (s *stubAccounts) Update(context.Context, *entity.Account) error { return nil }
func (s *stubAccounts) List(context.Context, repository.AccountFilter) ([]entity.Account, error) {
	return nil, nil
}
func (s *stubAccounts) ListDoctors(context.Context) ([]entity.Account, error) { return nil, nil }
func (s *stubAccounts) CountActive(context.Context) (int64, error)            { return 0, nil }
func (s *stubAccounts) CountByRole(context.Context) (map[entity.Role]int64, error) {
	return nil, nil
}

var _ repository.AccountRepository = (*stubAccounts)(nil)

func testGate(t *testing.T, accounts *stubAccounts, extra ...gin.HandlerFunc) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour)

	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(jwt, accounts)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		a := AccountFromCtx(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "role": a.Role})
	})
	r.GET("/protected", chain...)
	return r, jwt
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func account(id string, role entity.Role, status entity.Status) *entity.Account {
	return &entity.Account{ID: id, Role: role, Status: status, Password: "hash"}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r, _ := testGate(t, &stubAccounts{})
	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r, _ := testGate(t, &stubAccounts{})
	w := doGet(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	r, _ := testGate(t, &stubAccounts{})
	w := doGet(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RoleDoctor, entity.StatusActive),
	}}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour)
	r.GET("/protected", RequireAuth(jwt, accounts), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Same secret, expiry already in the past.
	expired := helpers.NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	token, _, err := expired.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)

	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token failed")
}

func TestRequireAuthUnknownAccount(t *testing.T) {
	r, jwt := testGate(t, &stubAccounts{byID: map[string]*entity.Account{}})
	token, _, err := jwt.GenerateAccessToken("ghost", "sid")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBlockedAccount(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RoleDoctor, entity.StatusBlocked),
	}}
	r, jwt := testGate(t, accounts)
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "blocked or deleted")
}

func TestRequireAuthSuspendedAccountDistinctMessage(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RoleDoctor, entity.StatusSuspended),
	}}
	r, jwt := testGate(t, accounts)
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "suspended")
}

func TestRequireAuthStatusChangeAfterIssuanceTakesEffect(t *testing.T) {
	a := account("u1", entity.RolePatient, entity.StatusActive)
	accounts := &stubAccounts{byID: map[string]*entity.Account{"u1": a}}
	r, jwt := testGate(t, accounts)
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)

	a.Status = entity.StatusBlocked
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+token).Code)
}

func TestRequireAuthStripsPassword(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RolePatient, entity.StatusActive),
	}}
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, time.Hour)

	var seenPassword string
	r := gin.New()
	r.GET("/protected", RequireAuth(jwt, accounts), func(c *gin.Context) {
		seenPassword = AccountFromCtx(c).Password
		c.Status(http.StatusOK)
	})
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seenPassword)
}

func TestRequireRolesAllowsMember(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RoleAdmin, entity.StatusActive),
	}}
	r, jwt := testGate(t, accounts, AdminOnly())
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)
}

func TestRequireRolesForbiddenNamesRequiredRoles(t *testing.T) {
	accounts := &stubAccounts{byID: map[string]*entity.Account{
		"u1": account("u1", entity.RolePatient, entity.StatusActive),
	}}
	r, jwt := testGate(t, accounts, AdminOnly())
	token, _, err := jwt.GenerateAccessToken("u1", "sid")
	require.NoError(t, err)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin")
}

func TestAdminOrFrontDeskAllowsBoth(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleFrontDesk} {
		accounts := &stubAccounts{byID: map[string]*entity.Account{
			"u1": account("u1", role, entity.StatusActive),
		}}
		r, jwt := testGate(t, accounts, AdminOrFrontDesk())
		token, _, err := jwt.GenerateAccessToken("u1", "sid")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)
	}
}
