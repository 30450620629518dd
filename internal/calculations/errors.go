package calculations

import "errors"

var (
	// ErrInvalidLoanParameters - параметры кредита или стратегии вне допустимых значений
	ErrInvalidLoanParameters = errors.New("invalid loan parameters")
	// ErrUnsupportedStrategy - неизвестная стратегия
	ErrUnsupportedStrategy = errors.New("unsupported strategy")
)
