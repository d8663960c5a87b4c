// Package repository owns the application's data.
//
// There is no database: the service catalog is a fixed table seeded at
// startup and the customer registry is an append-only table that lives
// as long as the process. Both are plain values owned by Repositories,
// built once and handed to the service layer; nothing here is a
// package-level singleton.
package repository

import (
	"errors"
	"time"

	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// ErrNotFound is returned when no record has the requested identifier.
var ErrNotFound = errors.New("record not found")

// Repositories is a container for all repository instances.
type Repositories struct {
	Services  *ServiceRepository
	Customers *CustomerRepository
}

// NewRepositories constructs the repository container with fresh stores.
func NewRepositories(s *server.Server) *Repositories {
	repos := &Repositories{
		Services:  NewServiceRepository(),
		Customers: NewCustomerRepository(time.Now),
	}

	s.Logger.Debug().
		Int("services", len(repos.Services.ListAll())).
		Msg("repositories initialized")

	return repos
}
