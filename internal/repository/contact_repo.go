package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	// ListByUser orders by priority, highest first.
	ListByUser(ctx context.Context, userID string) ([]model.Contact, error)
	ListEmergency(ctx context.Context, userID string) ([]model.Contact, error)
	Delete(ctx context.Context, id string) error
}

type contactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).Where("contact_id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) ListByUser(ctx context.Context, userID string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) ListEmergency(ctx context.Context, userID string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_emergency = ?", userID, true).
		Order("priority DESC, created_at ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("contact_id = ?", id).Delete(&model.Contact{}).Error
}
