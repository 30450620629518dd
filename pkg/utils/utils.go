package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 округляет число до 2 знаков после запятой
func Round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// MonthlyRate переводит годовую ставку в процентах в месячную долю
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(decimal.NewFromInt(12))
}

// Float переводит decimal в float64 для метрик и трейсинга
func Float(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}
