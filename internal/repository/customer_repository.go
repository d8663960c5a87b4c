package repository

import (
	"sync"
	"time"

	"github.com/deppfellow/touch-of-elegance/internal/model"
)

// CustomerRepository is the append-only, in-memory customer registry.
//
// Ids come from a counter that starts at 1 and is only ever incremented
// inside the same critical section that appends the record, so ids are
// unique, strictly increasing and equal to insertion order.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers []model.Customer
	nextID    int
	now       func() time.Time
}

// NewCustomerRepository returns an empty registry stamping records with now.
func NewCustomerRepository(now func() time.Time) *CustomerRepository {
	if now == nil {
		now = time.Now
	}
	return &CustomerRepository{
		customers: make([]model.Customer, 0),
		nextID:    1,
		now:       now,
	}
}

// Create appends a new customer. Fields are stored as given; callers
// validate and trim them first.
func (r *CustomerRepository) Create(firstName, lastName, phoneNumber string) model.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer := model.Customer{
		ID:          r.nextID,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		CreatedAt:   r.now().UTC().Truncate(time.Millisecond),
	}
	r.nextID++

	r.customers = append(r.customers, customer)
	return customer
}

// ListAll returns every customer in insertion order. Never nil.
func (r *CustomerRepository) ListAll() []model.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Customer, len(r.customers))
	copy(out, r.customers)
	return out
}

// GetByID returns the customer with the given id or ErrNotFound.
func (r *CustomerRepository) GetByID(id int) (model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Ids are dense and start at 1, so the record sits at index id-1.
	if id < 1 || id > len(r.customers) {
		return model.Customer{}, ErrNotFound
	}
	return r.customers[id-1], nil
}
