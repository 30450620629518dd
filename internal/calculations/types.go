package calculations

import "github.com/shopspring/decimal"

// StrategyType определяет стратегию погашения для ScheduleWithStrategy
type StrategyType string

const (
	StrategyStandard   StrategyType = ""
	StrategyStepUp     StrategyType = "stepup"
	StrategyPrepayment StrategyType = "prepayment"
	StrategySecured    StrategyType = "secured"
)

// LoanParameters представляет параметры кредита
type LoanParameters struct {
	Principal   decimal.Decimal  `json:"principal"`
	AnnualRate  decimal.Decimal  `json:"annualRate"`
	TenureYears int              `json:"tenureYears"`
	EMI         *decimal.Decimal `json:"emi,omitempty"`
}

// StepUpConfig увеличивает платеж на AnnualIncrease каждые 12 месяцев
type StepUpConfig struct {
	AnnualIncrease decimal.Decimal `json:"annualIncrease"`
}

// PrepaymentConfig задает разовый досрочный платеж в конце года Year
type PrepaymentConfig struct {
	Amount decimal.Decimal `json:"amount"`
	Year   int             `json:"year"`
}

// SecuredConfig заменяет годовую ставку до расчета платежа
type SecuredConfig struct {
	NewRate *decimal.Decimal `json:"newRate,omitempty"`
}

// StrategyConfig содержит настройки стратегий; читается только выбранная
type StrategyConfig struct {
	StepUp     *StepUpConfig     `json:"stepup,omitempty"`
	Prepayment *PrepaymentConfig `json:"prepayment,omitempty"`
	Secured    *SecuredConfig    `json:"secured,omitempty"`
}

// MonthlyPayment представляет одну строку графика платежей
type MonthlyPayment struct {
	Month               int             `json:"month"`
	EMI                 decimal.Decimal `json:"emi"`
	PrincipalPayment    decimal.Decimal `json:"principalPayment"`
	InterestPayment     decimal.Decimal `json:"interestPayment"`
	Prepayment          decimal.Decimal `json:"prepayment"`
	RemainingBalance    decimal.Decimal `json:"remainingBalance"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
}

// YearlyBreakdown представляет итоги графика за год
type YearlyBreakdown struct {
	Year             int             `json:"year"`
	TotalEMI         decimal.Decimal `json:"totalEMI"`
	TotalPrincipal   decimal.Decimal `json:"totalPrincipal"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	TotalPrepayment  decimal.Decimal `json:"totalPrepayment"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// LoanDetails представляет сводку по графику. TenureYears - фактический срок,
// при досрочном погашении он короче запрошенного.
type LoanDetails struct {
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      decimal.Decimal `json:"annualRate"`
	TenureYears     decimal.Decimal `json:"tenureYears"`
	TenureMonths    int             `json:"tenureMonths"`
	MonthlyEMI      decimal.Decimal `json:"monthlyEMI"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalPrepayment decimal.Decimal `json:"totalPrepayment"`
}

// CalculationResult представляет результат расчета графика
type CalculationResult struct {
	LoanDetails     LoanDetails       `json:"loanDetails"`
	MonthlySchedule []MonthlyPayment  `json:"monthlySchedule"`
	YearlyBreakdown []YearlyBreakdown `json:"yearlyBreakdown"`
}

// StrategyComparison представляет сравнение стратегии со стандартным графиком
type StrategyComparison struct {
	StrategyType   StrategyType      `json:"strategyType"`
	Standard       CalculationResult `json:"standard"`
	Strategy       CalculationResult `json:"strategy"`
	InterestSaved  decimal.Decimal   `json:"interestSaved"`
	MonthsSaved    int               `json:"monthsSaved"`
	Recommendation string            `json:"recommendation"`
}
