package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nexus/config"
	"nexus/internal/auth"
	"nexus/internal/logs"
	"nexus/internal/models"
	"nexus/internal/repo"
)

type testEnv struct {
	router *mux.Router
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logs.Init(logs.Options{Level: "error"})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Server{},
		&models.ServerMetric{},
		&models.CRMLead{},
		&models.CloudFile{},
		&models.HostingPlan{},
		&models.HostingOrder{},
		&models.Alert{},
		&models.SiteTemplate{},
	))

	cfg := &config.Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTLMinutes = 30
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Billing.DomainFee = 1.00
	cfg.Billing.VATRate = 0.20

	users := repo.NewUserStore(db)
	tokens := auth.NewTokens(cfg.Auth.Secret, 30*time.Minute)
	authSvc := auth.NewService(users, tokens, cfg.Auth.BcryptCost)

	h := New(cfg, authSvc,
		repo.NewServerStore(db),
		repo.NewLeadStore(db),
		repo.NewFileStore(db),
		repo.NewHostingStore(db),
		repo.NewAlertStore(db),
		repo.NewTemplateStore(db),
	)

	router := mux.NewRouter().StrictSlash(true)
	h.RegisterRoutes(router)
	return &testEnv{router: router, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and exchanges the credentials for a token.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/register", "", map[string]string{
		"email": email, "full_name": "Test User", "password": "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	form := url.Values{"username": {email}, "password": {"s3cret-passw0rd"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	lrec := httptest.NewRecorder()
	e.router.ServeHTTP(lrec, req)
	require.Equal(t, http.StatusOK, lrec.Code, lrec.Body.String())

	var out tokenResponse
	require.NoError(t, json.Unmarshal(lrec.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	require.Equal(t, "bearer", out.TokenType)
	return out.AccessToken
}

func TestRegister_NoHashInResponse(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/register", "", map[string]string{
		"email": "alice@example.com", "full_name": "Alice", "password": "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	assert.NotContains(t, rec.Body.String(), "s3cret-passw0rd")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]string{
		"email": "dup@example.com", "full_name": "Dup", "password": "s3cret-passw0rd",
	}
	rec := env.do(t, http.MethodPost, "/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	for _, payload := range []map[string]string{
		{"email": "not-an-email", "full_name": "X", "password": "s3cret-passw0rd"},
		{"email": "ok@example.com", "full_name": "", "password": "s3cret-passw0rd"},
		{"email": "ok@example.com", "full_name": "X", "password": "short"},
	} {
		rec := env.do(t, http.MethodPost, "/register", "", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %v", payload)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	form := url.Values{"username": {"alice@example.com"}, "password": {"wrong-password"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown account fails with the same status.
	form = url.Values{"username": {"nobody@example.com"}, "password": {"whatever-pass"}}
	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Email)

	rec = env.do(t, http.MethodGet, "/me", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServers_OwnershipMasking(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.signup(t, "alice@example.com")
	bobToken := env.signup(t, "bob@example.com")

	rec := env.do(t, http.MethodPost, "/servers", aliceToken, map[string]any{
		"name": "web-01", "location": "US-East-1", "ip_address": "10.0.0.1", "memory_total": 16,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var srv models.Server
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &srv))

	// The owner sees it.
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/servers/%d", srv.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A foreign id and a nonexistent id are indistinguishable.
	foreign := env.do(t, http.MethodGet, fmt.Sprintf("/servers/%d", srv.ID), bobToken, nil)
	missing := env.do(t, http.MethodGet, "/servers/424242", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, missing.Body.String(), foreign.Body.String())

	// Listings never leak foreign items.
	rec = env.do(t, http.MethodGet, "/servers", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var servers []models.Server
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &servers))
	assert.Empty(t, servers)
}

func TestServerMetrics_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.signup(t, "alice@example.com")
	bobToken := env.signup(t, "bob@example.com")

	rec := env.do(t, http.MethodPost, "/servers", aliceToken, map[string]any{
		"name": "web-01", "location": "US-East-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var srv models.Server
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &srv))

	metricsPath := fmt.Sprintf("/servers/%d/metrics", srv.ID)
	rec = env.do(t, http.MethodPost, metricsPath, aliceToken, map[string]any{
		"cpu_usage": 55.0, "memory_usage": 40.0, "network_in": 120.0, "network_out": 60.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The rollup is visible on the server row.
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/servers/%d", srv.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &srv))
	assert.Equal(t, 55.0, srv.CPUUsage)

	rec = env.do(t, http.MethodGet, metricsPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var metrics []models.ServerMetric
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Len(t, metrics, 1)

	// Metrics of a foreign server are masked, read and write alike.
	rec = env.do(t, http.MethodGet, metricsPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodPost, metricsPath, bobToken, map[string]any{
		"cpu_usage": 1.0, "memory_usage": 1.0,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeads_PatchMasking(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.signup(t, "alice@example.com")
	bobToken := env.signup(t, "bob@example.com")

	rec := env.do(t, http.MethodPost, "/crm/leads", aliceToken, map[string]any{
		"company_name": "Acme", "contact_name": "Jo", "email": "jo@acme.io", "estimated_value": 5000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lead models.CRMLead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	path := fmt.Sprintf("/crm/leads/%d", lead.ID)
	rec = env.do(t, http.MethodPatch, path, aliceToken, map[string]any{"status": "qualified"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, models.LeadStatusQualified, lead.Status)

	// Foreign patch is a 404, not a 403.
	rec = env.do(t, http.MethodPatch, path, bobToken, map[string]any{"status": "won"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, path, aliceToken, map[string]any{"status": "no-such-status"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloudFiles_StorageStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	for _, f := range []map[string]any{
		{"filename": "report.pdf", "file_type": "pdf", "file_size": 512.0},
		{"filename": "photo.jpg", "file_type": "jpg", "file_size": 512.0, "folder": "Pictures"},
	} {
		rec := env.do(t, http.MethodPost, "/cloud/files", token, f)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/cloud/storage-stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats storageStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1.0, stats.UsedGB) // 1024 MB
	assert.Equal(t, 100.0, stats.TotalGB)
	assert.Equal(t, 1.0, stats.Percentage)

	rec = env.do(t, http.MethodGet, "/cloud/files?folder=Pictures", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var files []models.CloudFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	assert.Len(t, files, 1)
}

func TestHostingOrder_TotalComputation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	plan := &models.HostingPlan{Name: "Starter", Price: 10.00}
	require.NoError(t, env.db.Create(plan).Error)

	rec := env.do(t, http.MethodPost, "/hosting/orders", token, map[string]any{
		"plan_id": plan.ID, "domain_name": "example.com", "datacenter_location": "EU-West-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	// (10.00 + 1.00) * 1.20
	assert.Equal(t, 13.20, out.TotalAmount)
	assert.Equal(t, models.PaymentStatusPending, out.Status)
	assert.NotEmpty(t, out.Reference)

	// The stored amount is authoritative.
	var stored models.HostingOrder
	require.NoError(t, env.db.First(&stored, out.OrderID).Error)
	assert.Equal(t, 13.20, stored.TotalAmount)

	rec = env.do(t, http.MethodPost, "/hosting/orders", token, map[string]any{
		"plan_id": 424242, "domain_name": "example.com", "datacenter_location": "EU-West-1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicCatalogs_NoAuth(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.HostingPlan{Name: "Starter", Price: 4.99}).Error)
	require.NoError(t, env.db.Create(&models.SiteTemplate{Name: "Minimal", Category: "Portfolio"}).Error)

	rec := env.do(t, http.MethodGet, "/hosting/plans", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/templates?category=Portfolio", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tpls []models.SiteTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpls))
	assert.Len(t, tpls, 1)
}

func TestAlerts_RequireAuthOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")
	require.NoError(t, env.db.Create(&models.Alert{
		Title: "High CPU", Severity: models.AlertSeverityCritical, Status: models.AlertStatusActive,
	}).Error)

	rec := env.do(t, http.MethodGet, "/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/alerts?status=active", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	assert.Len(t, alerts, 1)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice@example.com")

	rec := env.do(t, http.MethodPost, "/servers", token, map[string]any{
		"name": "web-01", "location": "US-East-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, env.db.Create(&models.Alert{
		Title: "High CPU", Severity: models.AlertSeverityCritical, Status: models.AlertStatusActive,
	}).Error)

	out := env.do(t, http.MethodGet, "/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, out.Code)
	var stats dashboardStats
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.TotalServers)
	assert.EqualValues(t, 1, stats.ActiveAlerts)
	assert.Equal(t, 12400, stats.ActiveUsers)
}

func TestExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice@example.com")

	expired := auth.NewTokens("test-secret", time.Minute)
	raw, err := expired.IssueWithTTL("alice@example.com", -1*time.Minute)
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/me", raw, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
