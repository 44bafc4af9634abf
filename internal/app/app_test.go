package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/config"
	"github.com/fekuna/storefront-service/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:      config.JWTConfig{SecretKey: "test-secret-0123456789", TTL: 168 * time.Hour, Issuer: "storefront"},
		Auth:     config.AuthConfig{RegistrationEnabled: true, BcryptCost: 4},
		WhatsApp: config.WhatsAppConfig{Phone: "5491234567890"},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(context.Background(), testConfig(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

type client struct {
	h     http.Handler
	token string
}

func (c *client) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, c *client) {
	t.Helper()
	rec := c.do(t, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"secret","name":"Admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(t, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
		Admin struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "a@x.com", res.Admin.Email)
	assert.Equal(t, "Admin", res.Admin.Name)
	c.token = res.Token
}

func TestAuthGate(t *testing.T) {
	a := newTestApp(t)
	anon := &client{h: a.Router}
	admin := &client{h: a.Router}
	login(t, admin)

	rec := admin.do(t, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = anon.do(t, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/x"},
		{http.MethodDelete, "/api/products/x"},
		{http.MethodPut, "/api/orders/x"},
		{http.MethodGet, "/api/stats"},
	} {
		rec := anon.do(t, route.method, route.path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	rec = anon.do(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = anon.do(t, http.MethodGet, "/api/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStorefrontFlow(t *testing.T) {
	a := newTestApp(t)
	anon := &client{h: a.Router}
	admin := &client{h: a.Router}
	login(t, admin)

	rec := admin.do(t, http.MethodPost, "/api/products", `{"name":"Bag","price":"19.99","stock":"5","category":"bags"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p struct {
		ID       string  `json:"id"`
		Price    float64 `json:"price"`
		Stock    int     `json:"stock"`
		Active   bool    `json:"active"`
		Featured bool    `json:"featured"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 19.99, p.Price)
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.Active)
	assert.False(t, p.Featured)

	rec = anon.do(t, http.MethodGet, "/api/categories", "")
	assert.JSONEq(t, `[{"name":"bags","productCount":1}]`, rec.Body.String())

	rec = anon.do(t, http.MethodPost, "/api/orders", `{
		"customer": {"name": "Ana", "phone": "555"},
		"lineItems": [{"productId": "`+p.ID+`", "name": "Bag", "price": 10, "quantity": 3}],
		"total": 999
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"whatsappUrl":"https://wa.me/5491234567890?text=`)

	var o struct {
		ID    string  `json:"id"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, 999.0, o.Total)

	rec = admin.do(t, http.MethodPut, "/api/orders/"+o.ID, `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = admin.do(t, http.MethodPut, "/api/orders/"+o.ID, `{"status":"pending"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = admin.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalProducts":1,"totalOrders":1,"pendingOrders":1,"totalRevenue":999}`, rec.Body.String())

	rec = admin.do(t, http.MethodDelete, "/api/products/"+p.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = admin.do(t, http.MethodDelete, "/api/products/"+p.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = admin.do(t, http.MethodGet, "/api/orders", "")
	assert.Contains(t, rec.Body.String(), `"productId":"`+p.ID+`"`)
}

func TestRegistrationDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.RegistrationEnabled = false
	a, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	rec := (&client{h: a.Router}).do(t, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "sqlite"
	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestOutOfRangeNumbersRejected(t *testing.T) {
	a := newTestApp(t)
	admin := &client{h: a.Router}
	login(t, admin)

	rec := admin.do(t, http.MethodPost, "/api/products", `{"name":"Neg","price":"1","stock":"1e19"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = admin.do(t, http.MethodPost, "/api/products", `{"name":"Inf","price":"1e400"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = admin.do(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
