package theaters

import (
	"time"

	"github.com/google/uuid"
)

type Theater struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Location  string    `json:"location" gorm:"not null;size:500"`
	Screens   []Screen  `json:"screens" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Screen is a child row of Theater; it has no identity outside its theater
type Screen struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TheaterID uuid.UUID `json:"theater_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Capacity  int       `json:"capacity" gorm:"not null;check:capacity > 0"`
}

type TheaterResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Location  string           `json:"location"`
	Screens   []ScreenResponse `json:"screens"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ScreenResponse struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type CreateTheaterRequest struct {
	Name     string                `json:"name" binding:"required,min=2,max=255"`
	Location string                `json:"location" binding:"required,min=2,max=500"`
	Screens  []CreateScreenRequest `json:"screens" binding:"required,min=1,dive"`
}

type CreateScreenRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=1000"`
}

type UpdateTheaterRequest struct {
	Name     *string               `json:"name" binding:"omitempty,min=2,max=255"`
	Location *string               `json:"location" binding:"omitempty,min=2,max=500"`
	Screens  []CreateScreenRequest `json:"screens" binding:"omitempty,min=1,dive"`
}

func (t *Theater) ToResponse() TheaterResponse {
	screens := make([]ScreenResponse, 0, len(t.Screens))
	for _, screen := range t.Screens {
		screens = append(screens, ScreenResponse{
			Name:     screen.Name,
			Capacity: screen.Capacity,
		})
	}

	return TheaterResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Location:  t.Location,
		Screens:   screens,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FindScreen returns the screen with the given name, or nil
func (t *Theater) FindScreen(name string) *Screen {
	for i := range t.Screens {
		if t.Screens[i].Name == name {
			return &t.Screens[i]
		}
	}
	return nil
}

// TableName specifies the table name for GORM
func (Theater) TableName() string {
	return "theaters"
}

// TableName specifies the table name for GORM
func (Screen) TableName() string {
	return "screens"
}
