package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// CaregiverRepository covers caregivers and their links to users.
type CaregiverRepository interface {
	Create(ctx context.Context, caregiver *model.Caregiver) error
	GetByID(ctx context.Context, id string) (*model.Caregiver, error)
	GetByEmail(ctx context.Context, email string) (*model.Caregiver, error)

	CreateLink(ctx context.Context, link *model.CaregiverUser) error
	GetLink(ctx context.Context, caregiverID, userID string) (*model.CaregiverUser, error)
	ListLinksByCaregiver(ctx context.Context, caregiverID string) ([]model.CaregiverUser, error)
	ListLinksByUser(ctx context.Context, userID string) ([]model.CaregiverUser, error)
}

type caregiverRepo struct {
	db *gorm.DB
}

// NewCaregiverRepo creates a CaregiverRepository.
func NewCaregiverRepo(db *gorm.DB) CaregiverRepository {
	return &caregiverRepo{db: db}
}

func (r *caregiverRepo) Create(ctx context.Context, caregiver *model.Caregiver) error {
	return r.db.WithContext(ctx).Create(caregiver).Error
}

func (r *caregiverRepo) GetByID(ctx context.Context, id string) (*model.Caregiver, error) {
	var cg model.Caregiver
	if err := r.db.WithContext(ctx).Where("caregiver_id = ?", id).First(&cg).Error; err != nil {
		return nil, err
	}
	return &cg, nil
}

func (r *caregiverRepo) GetByEmail(ctx context.Context, email string) (*model.Caregiver, error) {
	var cg model.Caregiver
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&cg).Error; err != nil {
		return nil, err
	}
	return &cg, nil
}

// ── links ──

func (r *caregiverRepo) CreateLink(ctx context.Context, link *model.CaregiverUser) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *caregiverRepo) GetLink(ctx context.Context, caregiverID, userID string) (*model.CaregiverUser, error) {
	var link model.CaregiverUser
	err := r.db.WithContext(ctx).
		Where("caregiver_id = ? AND user_id = ?", caregiverID, userID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *caregiverRepo) ListLinksByCaregiver(ctx context.Context, caregiverID string) ([]model.CaregiverUser, error) {
	var links []model.CaregiverUser
	db := r.db.WithContext(ctx)
	err := db.Where("caregiver_id = ?", caregiverID).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error
	if err != nil || len(links) == 0 {
		return links, err
	}

	ids := make([]string, len(links))
	for i := range links {
		ids[i] = links[i].UserID
	}
	var users []model.User
	if err := db.Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}
	for i := range links {
		links[i].User = byID[links[i].UserID]
	}
	return links, nil
}

func (r *caregiverRepo) ListLinksByUser(ctx context.Context, userID string) ([]model.CaregiverUser, error) {
	var links []model.CaregiverUser
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error
	if err != nil || len(links) == 0 {
		return links, err
	}

	ids := make([]string, len(links))
	for i := range links {
		ids[i] = links[i].CaregiverID
	}
	var caregivers []model.Caregiver
	if err := db.Where("caregiver_id IN ?", ids).Find(&caregivers).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Caregiver, len(caregivers))
	for i := range caregivers {
		byID[caregivers[i].CaregiverID] = &caregivers[i]
	}
	for i := range links {
		links[i].Caregiver = byID[links[i].CaregiverID]
	}
	return links, nil
}
