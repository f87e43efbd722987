package milestone

import (
	"time"

	"github.com/georgemunganga/vendora-backend/internal/modules/reward"
)

// Kind selects one of the three milestone programmes.
type Kind string

const (
	KindCashback   Kind = "cashback"
	KindFranchise  Kind = "franchise"
	KindMembership Kind = "membership"
)

// Kinds lists every programme in route order.
var Kinds = []Kind{KindCashback, KindFranchise, KindMembership}

func (k Kind) Valid() bool {
	return k == KindCashback || k == KindFranchise || k == KindMembership
}

// RewardType decides how RewardAmount is paid.
type RewardType string

const (
	RewardFlat    RewardType = "flat"
	RewardPercent RewardType = "percent" // RewardAmount percent of progress
)

// Milestone is a threshold that earns a reward once progress reaches it.
type Milestone struct {
	ID           string     `json:"id" bson:"_id"`
	Kind         Kind       `json:"kind" bson:"kind"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	Threshold    float64    `json:"threshold" bson:"threshold"`
	RewardAmount float64    `json:"rewardAmount" bson:"rewardAmount"`
	RewardType   RewardType `json:"rewardType" bson:"rewardType"`
	IsActive     bool       `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateMilestoneRequest struct {
	Title        string  `json:"title" yaml:"title"`
	Description  string  `json:"description" yaml:"description"`
	Threshold    float64 `json:"threshold" yaml:"threshold"`
	RewardAmount float64 `json:"rewardAmount" yaml:"rewardAmount"`
	RewardType   string  `json:"rewardType" yaml:"rewardType"` // flat when empty
	IsActive     *bool   `json:"isActive,omitempty" yaml:"isActive,omitempty"`
}

type UpdateMilestoneRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Threshold    *float64 `json:"threshold,omitempty"`
	RewardAmount *float64 `json:"rewardAmount,omitempty"`
	RewardType   *string  `json:"rewardType,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// EvaluateRequest reports a beneficiary's progress in the programme.
type EvaluateRequest struct {
	BeneficiaryID   string  `json:"beneficiaryId"`
	BeneficiaryType string  `json:"beneficiaryType"`
	Progress        float64 `json:"progress"`
}

// EvaluateResult lists new distributions and the milestones already awarded.
type EvaluateResult struct {
	Awarded []*reward.RewardDistribution `json:"awarded"`
	Skipped []string                     `json:"skipped"`
}
