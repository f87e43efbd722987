package emi

import "time"

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanClosed    PlanStatus = "closed"
	PlanDefaulted PlanStatus = "defaulted"
)

type InstallmentStatus string

const (
	InstallmentDue     InstallmentStatus = "due"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// DefaultAfterOverdue is the overdue count at which the sweep marks a plan defaulted.
const DefaultAfterOverdue = 3

// Plan is an equated monthly instalment schedule for a purchase.
type Plan struct {
	ID                 string        `json:"id" bson:"_id"`
	UserID             string        `json:"userId" bson:"userId"`
	OrderRef           string        `json:"orderRef,omitempty" bson:"orderRef,omitempty"`
	Principal          float64       `json:"principal" bson:"principal"`
	AnnualRate         float64       `json:"annualRate" bson:"annualRate"` // percent
	TenureMonths       int           `json:"tenureMonths" bson:"tenureMonths"`
	MonthlyInstallment float64       `json:"monthlyInstallment" bson:"monthlyInstallment"`
	StartDate          time.Time     `json:"startDate" bson:"startDate"`
	Status             PlanStatus    `json:"status" bson:"status"`
	Installments       []Installment `json:"installments" bson:"installments"`
	CreatedAt          time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type Installment struct {
	Number    int               `json:"number" bson:"number"`
	DueDate   time.Time         `json:"dueDate" bson:"dueDate"`
	Amount    float64           `json:"amount" bson:"amount"`
	Principal float64           `json:"principal" bson:"principal"`
	Interest  float64           `json:"interest" bson:"interest"`
	Status    InstallmentStatus `json:"status" bson:"status"`
	PaidAt    *time.Time        `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}

type CreatePlanRequest struct {
	UserID       string     `json:"userId"`
	OrderRef     string     `json:"orderRef"`
	Principal    float64    `json:"principal"`
	AnnualRate   float64    `json:"annualRate"`
	TenureMonths int        `json:"tenureMonths"`
	StartDate    *time.Time `json:"startDate,omitempty"` // defaults to now; first due one month later
}

// HistoryEntry is one paid installment in a user's payment history.
type HistoryEntry struct {
	PlanID   string    `json:"planId"`
	OrderRef string    `json:"orderRef,omitempty"`
	Number   int       `json:"number"`
	Amount   float64   `json:"amount"`
	PaidAt   time.Time `json:"paidAt"`
}

// PlanDetail summarises where a plan stands.
type PlanDetail struct {
	PlanID             string       `json:"planId"`
	OrderRef           string       `json:"orderRef,omitempty"`
	Status             PlanStatus   `json:"status"`
	Principal          float64      `json:"principal"`
	MonthlyInstallment float64      `json:"monthlyInstallment"`
	TenureMonths       int          `json:"tenureMonths"`
	PaidCount          int          `json:"paidCount"`
	OverdueCount       int          `json:"overdueCount"`
	OutstandingBalance float64      `json:"outstandingBalance"`
	NextDue            *Installment `json:"nextDue,omitempty"`
}

// SweepResult reports what the overdue sweep changed.
type SweepResult struct {
	Overdue   int64 `json:"overdue"`
	Defaulted int64 `json:"defaulted"`
}
