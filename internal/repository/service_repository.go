package repository

import (
	"github.com/deppfellow/touch-of-elegance/internal/model"
)

// seedServices is the fixed catalog. Order is significant: it is the listing order.
var seedServices = []model.Service{
	{
		ID:          1,
		Name:        "Dry Cleaning",
		Description: "Professional dry cleaning for all types of garments including suits, dresses, and delicate fabrics.",
		Category:    model.CategoryCleaning,
	},
	{
		ID:          2,
		Name:        "Laundry Service",
		Description: "Wash, dry, and fold services for your everyday clothing and household items.",
		Category:    model.CategoryCleaning,
	},
	{
		ID:          3,
		Name:        "Alterations",
		Description: "Expert tailoring and alterations to ensure the perfect fit for your garments.",
		Category:    model.CategoryTailoring,
	},
	{
		ID:          4,
		Name:        "Wedding Gown Care",
		Description: "Specialized cleaning and preservation for wedding dresses and formal wear.",
		Category:    model.CategorySpecialty,
	},
	{
		ID:          5,
		Name:        "Leather & Suede",
		Description: "Professional cleaning and care for leather jackets, suede garments, and accessories.",
		Category:    model.CategorySpecialty,
	},
	{
		ID:          6,
		Name:        "Household Items",
		Description: "Cleaning services for curtains, bedding, tablecloths, and other household textiles.",
		Category:    model.CategoryCleaning,
	},
}

// ServiceRepository is the read-only service catalog.
//
// It is never mutated after construction, so it needs no locking.
type ServiceRepository struct {
	services []model.Service
}

// NewServiceRepository returns a catalog holding its own copy of the seed table.
func NewServiceRepository() *ServiceRepository {
	services := make([]model.Service, len(seedServices))
	copy(services, seedServices)
	return &ServiceRepository{services: services}
}

// ListAll returns every service in seed order. Callers get a copy.
func (r *ServiceRepository) ListAll() []model.Service {
	out := make([]model.Service, len(r.services))
	copy(out, r.services)
	return out
}

// GetByID returns the service with the given id or ErrNotFound.
func (r *ServiceRepository) GetByID(id int) (model.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Service{}, ErrNotFound
}
