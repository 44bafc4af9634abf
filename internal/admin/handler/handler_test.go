package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/fekuna/storefront-service/internal/admin/repository"
	"github.com/fekuna/storefront-service/internal/admin/usecase"
	"github.com/fekuna/storefront-service/pkg/logger"
)

type plainPasswords struct{}

func (plainPasswords) Hash(p string) (string, error)    { return "h:" + p, nil }
func (plainPasswords) Check(h, p string) (bool, error) { return h == "h:"+p, nil }

type staticTokens struct{}

func (staticTokens) Issue(id string) (string, error) { return "tok-" + id, nil }

func newRouter(registrationEnabled bool) http.Handler {
	uc := usecase.NewAdminUseCase(repository.NewMemoryRepository(), plainPasswords{}, staticTokens{}, logger.NewNop())
	r := chi.NewRouter()
	NewAdminHandler(uc, registrationEnabled, logger.NewNop()).RegisterRoutes(r)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	h := newRouter(true)

	rec := do(h, http.MethodPost, "/auth/register", `{"email":"a@b.c","password":"pw","name":"Ana"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"admin registered"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/auth/register", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"tok-`)
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)
	assert.NotContains(t, rec.Body.String(), "h:pw")

	rec = do(h, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/auth/login", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDisabled(t *testing.T) {
	h := newRouter(false)

	rec := do(h, http.MethodPost, "/auth/register", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
