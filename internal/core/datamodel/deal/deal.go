package deal

import "time"

// Stage is the closed set of pipeline stages a deal moves through.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed_won"
	StageClosedLost  Stage = "closed_lost"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

type Deal struct {
	ID                int64      `gorm:"primaryKey"`
	Title             string     `gorm:"not null"`
	Description       *string    `gorm:"type:text"`
	Value             float64    `gorm:"default:0"`
	Stage             Stage      `gorm:"type:varchar(20);default:lead;index"`
	Probability       int        `gorm:"default:0"`
	ExpectedCloseDate *time.Time `gorm:"column:expected_close_date"`
	ActualCloseDate   *time.Time `gorm:"column:actual_close_date"`
	ContactID         int64      `gorm:"column:contact_id;not null;index"`
	OwnerID           int64      `gorm:"column:owner_id;not null;index"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (Deal) TableName() string {
	return "deals"
}
