package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// GenerationJob records one run of the PDF generation pipeline.
type GenerationJob struct {
	ID        uuid.UUID              `json:"id"`
	Email     string                 `json:"email"`
	Name      string                 `json:"name"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewGenerationJob(p Profile, now time.Time) *GenerationJob {
	return &GenerationJob{
		ID:        uuid.New(),
		Email:     p.Email,
		Name:      p.Name,
		Status:    JobRunning,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
