package service

import (
	"github.com/deppfellow/touch-of-elegance/internal/repository"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// Services groups the business layer.
type Services struct {
	Catalog   *CatalogService
	Customers *CustomerService
	Contact   *ContactService
}

// NewService wires every service to its repositories. The contact service
// records submissions to the application log.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Catalog:   NewCatalogService(s, repos.Services),
		Customers: NewCustomerService(s, repos.Customers),
		Contact:   NewContactService(s, NewLogContactSink(s.Logger)),
	}, nil
}
