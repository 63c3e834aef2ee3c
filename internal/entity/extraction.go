package entity

import (
	"time"

	"github.com/google/uuid"
)

// Extraction is one processed card image for transfer between layers.
// Field pointers are nil when a value could not be read from the image.
type Extraction struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	Engine       string    `json:"engine"`
	ImageHash    string    `json:"image_hash"`
	RawText      string    `json:"raw_text,omitempty"`
	Identity     *string   `json:"identity_number"`
	Name         *string   `json:"name"`
	FatherName   *string   `json:"father_name"`
	Gender       *string   `json:"gender"`
	Country      *string   `json:"country_of_stay"`
	DateOfBirth  *string   `json:"date_of_birth"`
	DateOfIssue  *string   `json:"date_of_issue"`
	DateOfExpiry *string   `json:"date_of_expiry"`
	Confidence   float64   `json:"confidence"`
	FilledFields int       `json:"filled_fields"`
	CreatedAt    time.Time `json:"created_at"`
}
