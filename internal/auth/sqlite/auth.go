package sqlite

import (
	"errors"

	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/auth"
	"github.com/sobrinN/DASH.rh/internal/company"
	userDatamodel "github.com/sobrinN/DASH.rh/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// UserRepository implements the auth.UserRepository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

// CreateWithCompany inserts the identity and its company in a single
// transaction, so a failed signup never leaves a user without a tenant. The
// duplicate check runs inside the transaction and the unique index on email
// backs it up against concurrent signups.
func (r *UserRepository) CreateWithCompany(user *auth.StoredUser, comp *company.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userDatamodel.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrEmailTaken
		}

		if err := tx.Create(toUserDataModel(user)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return internal.ErrEmailTaken
			}
			return err
		}

		if err := tx.Create(company.ToDataModel(comp)).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *UserRepository) GetByEmail(email string) (*auth.StoredUser, error) {
	var dm userDatamodel.User
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return fromUserDataModel(&dm), nil
}

func (r *UserRepository) GetByID(id string) (*auth.StoredUser, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return fromUserDataModel(&dm), nil
}

func (r *UserRepository) UpdatePasswordHash(userID, hash string) error {
	res := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toUserDataModel(u *auth.StoredUser) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserDataModel(dm *userDatamodel.User) *auth.StoredUser {
	return &auth.StoredUser{
		ID:           dm.ID,
		Email:        dm.Email,
		PasswordHash: dm.PasswordHash,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}
