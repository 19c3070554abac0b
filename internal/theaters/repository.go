package theaters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, theater *Theater) error
	GetByID(ctx context.Context, id uuid.UUID) (*Theater, error)
	List(ctx context.Context) ([]Theater, error)
	Update(ctx context.Context, theater *Theater) error
	ReplaceScreens(ctx context.Context, theaterID uuid.UUID, screens []Screen) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Theater, error) {
	var theater Theater
	err := r.db.WithContext(ctx).Preload("Screens").First(&theater, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &theater, nil
}

func (r *repository) List(ctx context.Context) ([]Theater, error) {
	var result []Theater
	err := r.db.WithContext(ctx).Preload("Screens").Order("name").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Omit("Screens").Save(theater).Error
}

// ReplaceScreens swaps out a theater's screens in one transaction
func (r *repository) ReplaceScreens(ctx context.Context, theaterID uuid.UUID, screens []Screen) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("theater_id = ?", theaterID).Delete(&Screen{}).Error; err != nil {
			return err
		}
		for i := range screens {
			screens[i].TheaterID = theaterID
		}
		return tx.Create(&screens).Error
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("theater_id = ?", id).Delete(&Screen{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Theater{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTheaterNotFound
		}
		return nil
	})
}
