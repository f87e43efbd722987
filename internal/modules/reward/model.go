package reward

import "time"

// Status is the payout state of a distribution.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// RewardDistribution is a payout owed to a beneficiary for reaching a milestone.
// At most one exists per beneficiary and milestone.
type RewardDistribution struct {
	ID              string     `json:"id" bson:"_id"`
	BeneficiaryID   string     `json:"beneficiaryId" bson:"beneficiaryId"`
	BeneficiaryType string     `json:"beneficiaryType" bson:"beneficiaryType"`
	MilestoneID     string     `json:"milestoneId" bson:"milestoneId"`
	MilestoneKind   string     `json:"milestoneKind" bson:"milestoneKind"`
	Amount          float64    `json:"amount" bson:"amount"`
	Status          Status     `json:"status" bson:"status"`
	PaidAt          *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ListFilter narrows List results; empty fields match everything.
type ListFilter struct {
	BeneficiaryID string
	Status        Status
	Skip          int
	Limit         int
}

// ReportRow is one (kind, status) bucket of the distribution report.
type ReportRow struct {
	Kind   string  `json:"kind" bson:"kind"`
	Status string  `json:"status" bson:"status"`
	Count  int64   `json:"count" bson:"count"`
	Amount float64 `json:"amount" bson:"amount"`
}

// Totals aggregates count and amount.
type Totals struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// Report summarises distributions created inside [From, To).
type Report struct {
	From     *time.Time        `json:"from,omitempty"`
	To       *time.Time        `json:"to,omitempty"`
	Rows     []ReportRow       `json:"rows"`
	ByKind   map[string]Totals `json:"byKind"`
	ByStatus map[string]Totals `json:"byStatus"`
	Total    Totals            `json:"total"`
}
