package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloud-ru/emi-schedule-go/internal/cache"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func testConfig() *config.Config {
	return &config.Config{
		AppRequestTimeout:  5 * time.Second,
		MaxPrincipal:       1e9,
		MaxRate:            200,
		MaxTenureYears:     50,
		RateLimitPerMinute: 1000,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, results cache.Cache) http.Handler {
	t.Helper()
	if results == nil {
		lru, err := cache.NewLRU(16)
		require.NoError(t, err)
		results = lru
	}
	return New(cfg, nil, noop.NewTracerProvider().Tracer("test"), results)
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	post(t, router, "/api/v1/emi", `{"principal":1200000,"annualRate":9,"tenureYears":2}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestCalculateSchedule(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	rec := post(t, router, "/api/v1/schedule", `{"principal":1200000,"annualRate":9,"tenureYears":2,"name":"Asha","email":"asha@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.CalculationResult)

	assert.Equal(t, "success", resp.Status)
	assert.False(t, resp.Cached)
	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err, "generated request id must be a uuid")

	details := resp.LoanDetails
	assert.Equal(t, "54821.69", details.MonthlyEMI.StringFixed(2))
	assert.Equal(t, "115720.59", details.TotalInterest.StringFixed(2))
	assert.Equal(t, "1315720.59", details.TotalAmount.StringFixed(2))
	assert.Equal(t, 24, details.TenureMonths)
	assert.Len(t, resp.MonthlySchedule, 24)
	assert.Len(t, resp.YearlyBreakdown, 2)
	assert.True(t, resp.MonthlySchedule[23].RemainingBalance.IsZero())
}

func TestCalculateScheduleIdempotent(t *testing.T) {
	results, err := cache.NewLRU(16)
	require.NoError(t, err)
	router := newTestRouter(t, testConfig(), results)

	body := `{"principal":500000,"annualRate":10,"tenureYears":5,"requestId":"loan-42"}`

	first := post(t, router, "/api/v1/schedule", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	second := post(t, router, "/api/v1/schedule", body)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	var a, b scheduleResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))

	assert.False(t, a.Cached)
	assert.True(t, b.Cached)
	assert.Equal(t, "loan-42", b.RequestID)
	assert.Equal(t, a.LoanDetails.TotalInterest.StringFixed(2), b.LoanDetails.TotalInterest.StringFixed(2))
	assert.Len(t, b.MonthlySchedule, 60)
	assert.Equal(t, 1, results.Len())
}

func TestCalculateScheduleRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	router := newTestRouter(t, testConfig(), cache.NewRedis(client, time.Hour))

	rec := post(t, router, "/api/v1/schedule", `{"principal":500000,"annualRate":10,"tenureYears":5,"requestId":"redis-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := mr.Get("emi-schedule:schedule:redis-1")
	require.NoError(t, err)
	assert.Contains(t, stored, "monthlySchedule")

	again := post(t, router, "/api/v1/schedule", `{"principal":500000,"annualRate":10,"tenureYears":5,"requestId":"redis-1"}`)
	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestCalculateScheduleStrategies(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	tests := []struct {
		name         string
		body         string
		wantRows     int
		wantInterest string
		wantPrepaid  string
	}{
		{
			name:         "prepayment",
			body:         `{"principal":500000,"annualRate":10,"tenureYears":5,"strategyType":"prepayment","strategyConfig":{"prepayment":{"amount":100000,"year":2}}}`,
			wantRows:     48,
			wantInterest: "108727.36",
			wantPrepaid:  "100000.00",
		},
		{
			name:         "step-up",
			body:         `{"principal":1000000,"annualRate":10,"tenureYears":10,"strategyType":"stepup","strategyConfig":{"stepup":{"annualIncrease":2000}}}`,
			wantRows:     76,
			wantInterest: "400297.02",
			wantPrepaid:  "0.00",
		},
		{
			name:         "secured",
			body:         `{"principal":500000,"annualRate":10,"tenureYears":5,"strategyType":"secured","strategyConfig":{"secured":{"newRate":8}}}`,
			wantRows:     60,
			wantInterest: "108291.78",
			wantPrepaid:  "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, router, "/api/v1/schedule", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp scheduleResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.MonthlySchedule, tt.wantRows)
			assert.Equal(t, tt.wantInterest, resp.LoanDetails.TotalInterest.StringFixed(2))
			assert.Equal(t, tt.wantPrepaid, resp.LoanDetails.TotalPrepayment.StringFixed(2))
		})
	}
}

func TestCalculateScheduleErrors(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	tests := []struct {
		name      string
		body      string
		wantTitle string
	}{
		{
			name:      "zero principal",
			body:      `{"principal":0,"annualRate":9,"tenureYears":2}`,
			wantTitle: "Invalid Loan Parameters",
		},
		{
			name:      "negative rate",
			body:      `{"principal":1000,"annualRate":-1,"tenureYears":2}`,
			wantTitle: "Invalid Loan Parameters",
		},
		{
			name:      "tenure above limit",
			body:      `{"principal":1000,"annualRate":9,"tenureYears":51}`,
			wantTitle: "Invalid Loan Parameters",
		},
		{
			name:      "unknown strategy",
			body:      `{"principal":1000,"annualRate":9,"tenureYears":2,"strategyType":"balloon"}`,
			wantTitle: "Unsupported Strategy",
		},
		{
			name:      "malformed json",
			body:      `{"principal":`,
			wantTitle: "Invalid Request Body",
		},
		{
			name:      "unknown field",
			body:      `{"principal":1000,"annualRate":9,"tenureYears":2,"currency":"INR"}`,
			wantTitle: "Invalid Request Body",
		},
		{
			name:      "invalid email",
			body:      `{"principal":1000,"annualRate":9,"tenureYears":2,"email":"not-an-email"}`,
			wantTitle: "Validation Failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, router, "/api/v1/schedule", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var problem problemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantTitle, problem.Title)
			assert.Equal(t, http.StatusBadRequest, problem.Status)
		})
	}
}

func TestCompareStrategy(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	rec := post(t, router, "/api/v1/schedule/compare", `{"principal":500000,"annualRate":10,"tenureYears":5,"strategyType":"prepayment","strategyConfig":{"prepayment":{"amount":100000,"year":2}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.StrategyComparison)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "28684.02", resp.InterestSaved.StringFixed(2))
	assert.Equal(t, 12, resp.MonthsSaved)
	assert.NotEmpty(t, resp.Recommendation)
}

func TestCalculateEMI(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	rec := post(t, router, "/api/v1/emi", `{"principal":"1200000","annualRate":"9","tenureYears":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp emiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "54821.69", resp.EMI.StringFixed(2))

	bad := post(t, router, "/api/v1/emi", `{"principal":1200000,"annualRate":9,"tenureYears":0}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	router := newTestRouter(t, cfg, nil)

	body := `{"principal":100000,"annualRate":12,"tenureYears":1}`
	assert.Equal(t, http.StatusOK, post(t, router, "/api/v1/emi", body).Code)
	assert.Equal(t, http.StatusOK, post(t, router, "/api/v1/emi", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(t, router, "/api/v1/emi", body).Code)

	// health checks are outside the limited group
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalculateScheduleConcurrentRequestID(t *testing.T) {
	results, err := cache.NewLRU(16)
	require.NoError(t, err)
	router := newTestRouter(t, testConfig(), results)

	body := `{"principal":1000000,"annualRate":10,"tenureYears":10,"strategyType":"stepup","strategyConfig":{"stepup":{"annualIncrease":2000}},"requestId":"burst"}`

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = post(t, router, "/api/v1/schedule", body).Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, 1, results.Len())
}
