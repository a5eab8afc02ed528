package directory

import (
	"context"

	"gorm.io/gorm"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	FindByID(ctx context.Context, id uint64) (*Contact, error)
	FindByFullNames(ctx context.Context, names []string) ([]Contact, error)
	Search(ctx context.Context, query string, limit int) ([]Contact, error)
	Deactivate(ctx context.Context, id uint64) error
}

type ContactRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new contact repository
func NewRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Contact, error) {
	var contact Contact
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) FindByID(ctx context.Context, id uint64) (*Contact, error) {
	var contact Contact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	return &contact, err
}

func (r *ContactRepositoryImpl) FindByFullNames(ctx context.Context, names []string) ([]Contact, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var contacts []Contact
	err := r.db.WithContext(ctx).Where("full_name IN ?", names).Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]Contact, error) {
	var contacts []Contact
	err := r.db.WithContext(ctx).
		Where("full_name ILIKE ? OR email ILIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepositoryImpl) Deactivate(ctx context.Context, id uint64) error {
	contact, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	contact.IsActive = false
	return r.db.WithContext(ctx).Save(contact).Error
}
