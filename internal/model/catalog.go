package model

// Service is a bookable catalog entry.
type Service struct {
	Base
	Name              string  `json:"name" db:"name"`
	Description       string  `json:"description" db:"description"`
	DurationMinutes   int     `json:"duration_minutes" db:"duration_minutes"`
	BaseFee           float64 `json:"base_fee" db:"base_fee"`
	Image             *string `json:"image" db:"image"`
	RequiredEquipment *string `json:"required_equipment" db:"required_equipment"`
	IsActive          bool    `json:"is_active" db:"is_active"`
}

type CreateServiceRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	Description       string  `json:"description" binding:"required"`
	DurationMinutes   int     `json:"duration_minutes" binding:"required,gt=0"`
	BaseFee           float64 `json:"base_fee" binding:"gte=0"`
	RequiredEquipment string  `json:"required_equipment"`
	IsActive          *bool   `json:"is_active"`
}

// Exercise is reference data consumed by treatment plans and reminders.
type Exercise struct {
	Base
	Name            string  `json:"name" db:"name"`
	Description     *string `json:"description" db:"description"`
	DemoVideoURL    *string `json:"demo_video_url" db:"demo_video_url"`
	RepetitionCount int     `json:"repetition_count" db:"repetition_count"`
	DifficultyLevel *string `json:"difficulty_level" db:"difficulty_level"`
	FocusArea       *string `json:"focus_area" db:"focus_area"`
}

type CreateExerciseRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description"`
	DemoVideoURL    string `json:"demo_video_url" binding:"omitempty,url"`
	RepetitionCount int    `json:"repetition_count" binding:"gte=0"`
	DifficultyLevel string `json:"difficulty_level"`
	FocusArea       string `json:"focus_area"`
}
