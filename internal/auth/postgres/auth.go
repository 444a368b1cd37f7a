package postgres

import (
	"github.com/voltmover/crm/internal/auth"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository resolves credentials and tokens to user records.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("username = ?", username).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
