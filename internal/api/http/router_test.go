package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-capture-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-capture-service/internal/auth"
	"github.com/spec-kit/lead-capture-service/internal/config"
	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/observability"
	"github.com/spec-kit/lead-capture-service/internal/ratelimit"
	"github.com/spec-kit/lead-capture-service/internal/repository"
	"github.com/spec-kit/lead-capture-service/internal/service"
	"github.com/spec-kit/lead-capture-service/internal/validation"
)

const (
	testJWTSecret     = "0123456789abcdef0123456789abcdef"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "Sup3r$ecretAdmin!"
	testUserEmail     = "viewer@example.com"
	testUserPassword  = "N0t-an-Admin-123!"
)

// memLeadRepo backs the transport tests without Postgres.
type memLeadRepo struct {
	leads  map[int64]*domain.Lead
	nextID int64
}

func (r *memLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	r.nextID++
	lead.ID = r.nextID
	lead.CreatedAt = time.Now()
	clone := *lead
	r.leads[lead.ID] = &clone
	return nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id int64) (*domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *lead
	return &clone, nil
}

func (r *memLeadRepo) List(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	var out []domain.Lead
	for id := int64(1); id <= r.nextID; id++ {
		if lead, ok := r.leads[id]; ok {
			if filter.Status != nil && lead.Status != *filter.Status {
				continue
			}
			out = append(out, *lead)
		}
	}
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memLeadRepo) Count(_ context.Context, filter repository.LeadFilter) (int64, error) {
	var total int64
	for _, lead := range r.leads {
		if filter.Status != nil && lead.Status != *filter.Status {
			continue
		}
		total++
	}
	return total, nil
}

func (r *memLeadRepo) UpdateStatus(_ context.Context, id int64, status domain.LeadStatus) error {
	lead, ok := r.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	lead.Status = status
	return nil
}

func (r *memLeadRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.leads, id)
	return nil
}

func (r *memLeadRepo) Stats(_ context.Context) (*repository.LeadStats, error) {
	stats := &repository.LeadStats{}
	today := time.Now().Format("2006-01-02")
	for _, lead := range r.leads {
		stats.Total++
		switch lead.Status {
		case domain.LeadStatusNew:
			stats.New++
		case domain.LeadStatusContacted:
			stats.Contacted++
		case domain.LeadStatusConverted:
			stats.Converted++
		}
		if lead.CreatedAt.Format("2006-01-02") == today {
			stats.Today++
		}
	}
	if stats.Today > 0 {
		stats.Last7Days = []repository.DayCount{{Date: today, Count: stats.Today}}
	}
	return stats, nil
}

func (r *memLeadRepo) StatsBySource(_ context.Context) ([]repository.SourceStats, error) {
	buckets := make(map[string]*repository.SourceStats)
	for _, lead := range r.leads {
		key := lead.Source + "|" + lead.UTMCampaign
		bucket, ok := buckets[key]
		if !ok {
			bucket = &repository.SourceStats{Source: lead.Source, UTMCampaign: lead.UTMCampaign}
			buckets[key] = bucket
		}
		bucket.Total++
		switch lead.Status {
		case domain.LeadStatusNew:
			bucket.New++
		case domain.LeadStatusContacted:
			bucket.Contacted++
		case domain.LeadStatusConverted:
			bucket.Converted++
		}
	}
	var out []repository.SourceStats
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

type memUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCourseRepo struct {
	courses map[int64]*domain.Course
}

func (r *memCourseRepo) ListActive(_ context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range r.courses {
		if course.Active {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *course
	return &clone, nil
}

func (r *memCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

func (r *memCourseRepo) InsertCourse(_ context.Context, course *domain.Course) error {
	course.ID = int64(len(r.courses) + 1)
	clone := *course
	r.courses[course.ID] = &clone
	return nil
}

func (r *memCourseRepo) InsertModule(_ context.Context, _ *domain.Module) error {
	return nil
}

type testEnv struct {
	app   *fiber.App
	leads *memLeadRepo
	users *memUserRepo
}

type testOptions struct {
	leadMax  int
	loginMax int
}

func newTestEnv(t *testing.T, opts testOptions) *testEnv {
	t.Helper()

	if opts.leadMax == 0 {
		opts.leadMax = 100
	}
	if opts.loginMax == 0 {
		opts.loginMax = 100
	}

	cfg := config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret, TokenTTLDays: 1},
	}

	leadRepo := &memLeadRepo{leads: make(map[int64]*domain.Lead)}
	userRepo := &memUserRepo{users: make(map[string]*domain.User)}
	courseRepo := &memCourseRepo{courses: make(map[int64]*domain.Course)}

	// bcrypt.MinCost keeps the login tests fast
	seedUser := func(id, name, email, password string, role domain.Role) {
		hash, err := auth.HashPassword(password, 4)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(context.Background(), &domain.User{
			ID:           id,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		}))
	}
	seedUser("admin-1", "Admin", testAdminEmail, testAdminPassword, domain.RoleAdmin)
	seedUser("user-1", "Viewer", testUserEmail, testUserPassword, domain.RoleUser)

	logger := zap.NewNop()
	leadService := service.NewLeadService(leadRepo, nil, logger)
	courseService := service.NewCourseService(courseRepo)
	authService := service.NewAuthService(cfg, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	validator := validation.New()
	metrics := observability.NewMetrics()

	store := ratelimit.NewMemoryStore()
	leadLimiter := ratelimit.New(store, "leads", opts.leadMax, time.Minute)
	loginLimiter := ratelimit.New(store, "login", opts.loginMax, time.Minute)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{
		CORSOrigins: []string{"http://localhost:5173"},
	})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("lead-capture-service", "test", false, nil, nil),
		Courses:        handlers.NewCoursesHandler(courseService),
		Leads:          handlers.NewLeadsHandler(leadService, validator),
		Auth:           handlers.NewAuthHandler(authService, validator, 24*time.Hour, false),
		AdminLeads:     handlers.NewAdminLeadsHandler(leadService),
		AuthMiddleware: authMiddleware,
		CSRF:           NewCSRF(false),
		LoginLimiter:   loginLimiter,
		LeadLimiter:    leadLimiter,
		Logger:         logger,
	})

	return &testEnv{app: app, leads: leadRepo, users: userRepo}
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, err := e.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRootReportsSecurityFeatures(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "API is running", body["message"])
	security, ok := body["security"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, security["rateLimit"])
	assert.Equal(t, true, security["csrf"])
	assert.Equal(t, false, security["webhook"])
}

func TestLeadSubmission(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/leads", map[string]string{
		"name":       "Ana Silva",
		"whatsapp":   "+1 (857) 555-0100",
		"city":       "Boston",
		"utm_source": "instagram",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	lead, ok := body["lead"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ana Silva", lead["name"])

	stored := env.leads.leads[1]
	require.NotNil(t, stored)
	assert.Equal(t, "instagram", stored.UTMSource)
	assert.Equal(t, "direct", stored.Source)
	assert.Equal(t, domain.LeadStatusNew, stored.Status)
}

func TestLeadSubmissionValidation(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/leads", map[string]string{
		"name": "A",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "validation failed", body["error"])
	details, ok := body["details"].([]any)
	require.True(t, ok)

	var fields []string
	for _, d := range details {
		entry, ok := d.(map[string]any)
		require.True(t, ok)
		fields = append(fields, entry["field"].(string))
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "whatsapp")

	assert.Empty(t, env.leads.leads, "rejected submissions must not persist")
}

func TestLeadSubmissionLengthChecksTrimmedValue(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	// padding must not smuggle a too-short number past the length rule
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/leads", map[string]string{
		"name":     "Ana Silva",
		"whatsapp": "  11999999  ",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	details, ok := body["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
	entry, ok := details[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "whatsapp", entry["field"])
	assert.Empty(t, env.leads.leads)

	// a padded but valid number still goes through, stored trimmed
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/leads", map[string]string{
		"name":     "Ana Silva",
		"whatsapp": "  11999999999  ",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, env.leads.leads[1])
	assert.Equal(t, "11999999999", env.leads.leads[1].Whatsapp)
}

func TestLeadSubmissionRateLimited(t *testing.T) {
	env := newTestEnv(t, testOptions{leadMax: 3})

	payload := map[string]string{"name": "Ana Silva", "whatsapp": "11999999999"}
	for i := 0; i < 3; i++ {
		resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/leads", payload))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/leads", payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	body := decodeBody(t, resp)
	assert.NotNil(t, body["retry_after"])
	assert.Len(t, env.leads.leads, 3)
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	// wrong password and unknown email answer identically
	for _, creds := range []map[string]string{
		{"email": testAdminEmail, "password": "WrongPassword1!"},
		{"email": "nobody@example.com", "password": testAdminPassword},
	} {
		resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", creds))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "invalid credentials", body["error"])
	}

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var haveCookie bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName {
			haveCookie = true
			assert.True(t, cookie.HttpOnly)
			assert.NotEmpty(t, cookie.Value)
		}
	}
	assert.True(t, haveCookie, "login must set the session cookie")

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testAdminEmail, user["email"])
	assert.Equal(t, "admin", user["role"])
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t, testOptions{loginMax: 5})

	creds := map[string]string{"email": testAdminEmail, "password": "WrongPassword1!"}
	for i := 0; i < 5; i++ {
		resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", creds))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// even valid credentials are refused once the window is exhausted
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAuthMe(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := env.login(t, testAdminEmail, testAdminPassword)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, testAdminEmail, body["email"])
	assert.Equal(t, "admin", body["role"])

	// cookie works too
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	userToken := env.login(t, testUserEmail, testUserPassword)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := env.login(t, testAdminEmail, testAdminPassword)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(50), body["limit"])
}

func TestAdminLeadListAndStats(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, env.leads.Create(ctx, &domain.Lead{
			Name:     fmt.Sprintf("Lead %d", i+1),
			Whatsapp: fmt.Sprintf("1199999990%d", i),
			Source:   "direct",
			Status:   domain.LeadStatusNew,
		}))
	}
	require.NoError(t, env.leads.UpdateStatus(ctx, 1, domain.LeadStatusContacted))

	token := env.login(t, testAdminEmail, testAdminPassword)
	authedGet := func(target string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := authedGet("/api/admin/leads?status=new")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total"])

	resp = authedGet("/api/admin/leads?status=archived")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = authedGet("/api/admin/leads/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "contacted", body["status"])

	resp = authedGet("/api/admin/leads/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = authedGet("/api/admin/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(3), body["total"])
	byStatus, ok := body["byStatus"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), byStatus["new"])
	assert.Equal(t, float64(1), byStatus["contacted"])
	assert.Equal(t, float64(0), byStatus["converted"])
	assert.Equal(t, float64(3), body["today"])
}

func TestAdminSourceStats(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	ctx := context.Background()

	seed := func(name, whatsapp, source, campaign string, status domain.LeadStatus) {
		require.NoError(t, env.leads.Create(ctx, &domain.Lead{
			Name: name, Whatsapp: whatsapp, Source: source, UTMCampaign: campaign, Status: status,
		}))
	}
	seed("Ana Silva", "11999999901", "instagram", "spring_launch", domain.LeadStatusNew)
	seed("Bruno Costa", "11999999902", "instagram", "spring_launch", domain.LeadStatusContacted)
	seed("Carla Souza", "11999999903", "direct", "none", domain.LeadStatusConverted)

	token := env.login(t, testAdminEmail, testAdminPassword)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats/sources", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var rows []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 2)

	// busiest pair first
	assert.Equal(t, "instagram", rows[0]["source"])
	assert.Equal(t, "spring_launch", rows[0]["utm_campaign"])
	assert.Equal(t, float64(2), rows[0]["total"])
	assert.Equal(t, float64(1), rows[0]["new"])
	assert.Equal(t, float64(1), rows[0]["contacted"])
	assert.Equal(t, float64(0), rows[0]["converted"])

	assert.Equal(t, "direct", rows[1]["source"])
	assert.Equal(t, "none", rows[1]["utm_campaign"])
	assert.Equal(t, float64(1), rows[1]["total"])
	assert.Equal(t, float64(1), rows[1]["converted"])
}

func TestCSRFTokenIssue(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookieToken string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CSRFCookieName {
			cookieToken = cookie.Value
		}
	}
	require.NotEmpty(t, cookieToken)

	body := decodeBody(t, resp)
	assert.Equal(t, cookieToken, body["csrfToken"])
}

func TestStatusUpdateRequiresCSRF(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	ctx := context.Background()

	require.NoError(t, env.leads.Create(ctx, &domain.Lead{
		Name: "Ana Silva", Whatsapp: "11999999999", Source: "direct", Status: domain.LeadStatusNew,
	}))

	token := env.login(t, testAdminEmail, testAdminPassword)
	csrfToken := "f4b7c1ce-8f93-4dd5-9a65-2f2b8a7c1d10"

	patch := func(header, cookie string) *http.Response {
		req := jsonRequest(http.MethodPatch, "/api/admin/leads/1/status", map[string]string{"status": "contacted"})
		req.Header.Set("Authorization", "Bearer "+token)
		if header != "" {
			req.Header.Set(CSRFHeaderName, header)
		}
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: cookie})
		}
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	// no token at all
	assert.Equal(t, http.StatusForbidden, patch("", "").StatusCode)
	// header without the matching cookie
	assert.Equal(t, http.StatusForbidden, patch(csrfToken, "").StatusCode)
	// mismatched pair
	assert.Equal(t, http.StatusForbidden, patch(csrfToken, strings.Repeat("x", len(csrfToken))).StatusCode)
	assert.Equal(t, domain.LeadStatusNew, env.leads.leads[1].Status)

	resp := patch(csrfToken, csrfToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, domain.LeadStatusContacted, env.leads.leads[1].Status)
}

func TestDeleteLeadRequiresCSRF(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	ctx := context.Background()

	require.NoError(t, env.leads.Create(ctx, &domain.Lead{
		Name: "Ana Silva", Whatsapp: "11999999999", Source: "direct", Status: domain.LeadStatusNew,
	}))

	token := env.login(t, testAdminEmail, testAdminPassword)
	csrfToken := "2a1fd6dc-6a81-4f0e-8877-5a3d3cf4a9b2"

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/leads/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, env.leads.leads, 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/leads/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(CSRFHeaderName, csrfToken)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: csrfToken})
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.leads.leads)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	resp, err := env.app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName {
			assert.Empty(t, cookie.Value)
		}
	}
}

func TestCourses(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var courses []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&courses))
	assert.Empty(t, courses)

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/courses/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/courses/99", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
