package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
	"github.com/cloud-ru/emi-schedule-go/internal/metrics"
	"github.com/cloud-ru/emi-schedule-go/internal/tools"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// scheduleRequest is the body of the schedule and compare endpoints
type scheduleRequest struct {
	Principal      decimal.Decimal              `json:"principal"`
	AnnualRate     decimal.Decimal              `json:"annualRate"`
	TenureYears    int                          `json:"tenureYears"`
	EMI            *decimal.Decimal             `json:"emi,omitempty"`
	StrategyType   calculations.StrategyType    `json:"strategyType,omitempty" validate:"max=32"`
	StrategyConfig *calculations.StrategyConfig `json:"strategyConfig,omitempty"`
	Name           string                       `json:"name,omitempty" validate:"max=200"`
	Email          string                       `json:"email,omitempty" validate:"omitempty,email,max=254"`
	RequestID      string                       `json:"requestId,omitempty" validate:"omitempty,max=128,printascii"`
}

func (r scheduleRequest) toolRequest() tools.Request {
	return tools.Request{
		Loan: calculations.LoanParameters{
			Principal:   r.Principal,
			AnnualRate:  r.AnnualRate,
			TenureYears: r.TenureYears,
			EMI:         r.EMI,
		},
		StrategyType:   r.StrategyType,
		StrategyConfig: r.StrategyConfig,
	}
}

type scheduleResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"requestId"`
	Cached    bool   `json:"cached"`
	*calculations.CalculationResult
}

type compareResponse struct {
	Status string `json:"status"`
	*calculations.StrategyComparison
}

type emiResponse struct {
	Status string          `json:"status"`
	EMI    decimal.Decimal `json:"emi"`
}

func (h *handler) calculateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	key := "schedule:" + requestID

	if req.RequestID != "" && h.results != nil {
		if result, ok := h.cachedResult(r, key); ok {
			writeJSON(w, http.StatusOK, scheduleResponse{
				Status:            "success",
				RequestID:         requestID,
				Cached:            true,
				CalculationResult: result,
			})
			return
		}
	}

	result, err := h.calculate(r.Context(), key, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{
		Status:            "success",
		RequestID:         requestID,
		CalculationResult: result,
	})
}

// calculate collapses concurrent requests for the same key into one
// calculation and stores the result for later retries.
func (h *handler) calculate(ctx context.Context, key string, req scheduleRequest) (*calculations.CalculationResult, error) {
	v, err, _ := h.inflight.Do(key, func() (any, error) {
		result, err := h.schedule(ctx, req.toolRequest())
		if err != nil {
			return nil, err
		}
		h.store(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*calculations.CalculationResult), nil
}

func (h *handler) store(ctx context.Context, key string, result *calculations.CalculationResult) {
	if h.results == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err == nil {
		err = h.results.Set(ctx, key, payload)
	}
	if err != nil {
		h.logger.Warn("failed to cache schedule",
			zap.String("op", "server.store"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// cachedResult returns a stored schedule, treating backend failures as misses
func (h *handler) cachedResult(r *http.Request, key string) (*calculations.CalculationResult, bool) {
	payload, ok, err := h.results.Get(r.Context(), key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("cache lookup failed",
			zap.String("op", "server.cachedResult"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var result calculations.CalculationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &result, true
}

func (h *handler) compareStrategy(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	comparison, err := h.compare(r.Context(), req.toolRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{Status: "success", StrategyComparison: comparison})
}

func (h *handler) calculateEMI(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	emi, err := h.emi(r.Context(), req.toolRequest().Loan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emiResponse{Status: "success", EMI: emi})
}

// decode reads and validates a JSON body, writing a problem response on failure
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst *scheduleRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", validationDetail(err))
		return false
	}
	return true
}

func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
