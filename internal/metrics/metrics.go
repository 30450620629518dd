package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Total number of calculation tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Number of failed calculations",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "API calls of calculation tools",
		},
		[]string{"service", "endpoint", "status"},
	)

	// ScheduleCalculations счетчик графиков по стратегиям
	ScheduleCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_calculations_total",
			Help: "Repayment schedules calculated per strategy",
		},
		[]string{"strategy", "status"},
	)

	// ScheduleMonths длина рассчитанных графиков
	ScheduleMonths = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_months",
			Help:    "Number of months in calculated schedules",
			Buckets: []float64{12, 24, 36, 60, 84, 120, 180, 240, 360, 480, 600},
		},
		[]string{"strategy"},
	)

	// CacheLookups счетчик обращений к кэшу результатов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Idempotency cache lookups by result",
		},
		[]string{"result"},
	)
)
