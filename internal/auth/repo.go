package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
)

// Repository defines persistence operations for companies and users.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an auth repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

func (r *repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
