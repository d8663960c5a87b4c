package model

// ServiceCategory tags a catalog entry.
type ServiceCategory string

const (
	CategoryCleaning  ServiceCategory = "cleaning"
	CategoryTailoring ServiceCategory = "tailoring"
	CategorySpecialty ServiceCategory = "specialty"
)

// Service is one entry of the read-only service catalog.
type Service struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    ServiceCategory `json:"category"`
}
