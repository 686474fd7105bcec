package accounts

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aptivai_backend/internal/accounts/repository"
	"aptivai_backend/internal/auth/token"
	"aptivai_backend/internal/events"
	apphttp "aptivai_backend/internal/http"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/logger"
)

const testSecret = "test-access-secret"

type testJWTConfig struct{}

func (testJWTConfig) GetJWTAccessSecret() string { return testSecret }

func newTestRouter(t *testing.T, repo repository.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New("development")

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(httpkit.AuthRequired(testJWTConfig{}))

	NewModuleWithRepository(repo, events.NewInMemoryBus(log), log).RegisterRoutes(&apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Protected: protected,
	})
	return engine
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	signed, _, err := token.NewIssuer(testSecret, time.Minute).Issue(userID, []string{"user"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + signed
}

func seed(repo *repository.Memory, ids ...uuid.UUID) {
	for _, id := range ids {
		repo.Accounts[id] = &repository.MemoryAccount{
			Email:       id.String() + "@example.com",
			FullName:    "Account " + id.String()[:8],
			Roles:       []string{"user"},
			Enrollments: 2,
		}
	}
}

func TestDeleteOtherUsersAccountIsForbidden(t *testing.T) {
	repo := repository.NewMemory()
	userA, userB := uuid.New(), uuid.New()
	seed(repo, userA, userB)
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/"+userB.String(), nil)
	req.Header.Set("Authorization", bearer(t, userA))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	b := repo.Accounts[userB]
	if b.Deleted || b.DeletionRequestedAt != nil || b.Enrollments != 2 || len(b.Roles) != 1 || b.FullName == repository.DeletedMarker {
		t.Errorf("expected user B untouched, got %+v", b)
	}
}

func TestDeleteOwnAccount(t *testing.T) {
	repo := repository.NewMemory()
	userA := uuid.New()
	seed(repo, userA)
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/"+userA.String(), nil)
	req.Header.Set("Authorization", bearer(t, userA))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !repo.Accounts[userA].Deleted {
		t.Error("expected the account to be deleted")
	}
}

func TestDeleteWithoutTokenIsUnauthorized(t *testing.T) {
	repo := repository.NewMemory()
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
