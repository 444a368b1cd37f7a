package activity

import "time"

// Activity is an interaction log entry. Rows are appended when deals and
// tasks are created; no endpoint reads the table yet.
type Activity struct {
	ID          int64     `gorm:"primaryKey"`
	Type        string    `gorm:"not null"`
	Subject     string    `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	ContactID   *int64    `gorm:"column:contact_id;index"`
	DealID      *int64    `gorm:"column:deal_id;index"`
	UserID      int64     `gorm:"column:user_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
