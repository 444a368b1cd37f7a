package contact

import "time"

type Contact struct {
	ID        int64     `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     *string   `gorm:"index"`
	Phone     *string
	Company   *string
	Position  *string
	Address   *string `gorm:"type:text"`
	Notes     *string `gorm:"type:text"`
	Tags      *string
	OwnerID   int64     `gorm:"column:owner_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}
