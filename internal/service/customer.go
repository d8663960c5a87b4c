package service

import (
	"context"
	"strings"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/repository"
	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/validation"
)

const (
	CustomerNotFoundMessage = "Customer not found"
	CustomerCreatedMessage  = "Customer created successfully"
)

var customerMessages = validation.Messages{
	"firstName":   "First name is required",
	"lastName":    "Last name is required",
	"phoneNumber": "Phone number is required",
}

// CreateCustomerInput is the payload of a customer registration.
//
// Fields are checked in declaration order and the first blank one is
// reported, so the order here is part of the API.
type CreateCustomerInput struct {
	FirstName   string `json:"firstName" form:"firstName" validate:"notblank"`
	LastName    string `json:"lastName" form:"lastName" validate:"notblank"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"notblank"`
}

func (i *CreateCustomerInput) Validate() error {
	return validation.Struct(i, customerMessages)
}

// CustomerService manages the customer registry.
type CustomerService struct {
	server *server.Server
	repo   *repository.CustomerRepository
}

func NewCustomerService(s *server.Server, repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{server: s, repo: repo}
}

// ListCustomers returns every customer in registration order.
func (cs *CustomerService) ListCustomers(ctx context.Context) []model.Customer {
	loggerFrom(ctx, cs.server.Logger).Info().Msg("fetching all customers")
	return cs.repo.ListAll()
}

// GetCustomer looks up a customer by its raw path id.
func (cs *CustomerService) GetCustomer(ctx context.Context, rawID string) (model.Customer, error) {
	loggerFrom(ctx, cs.server.Logger).Info().Str("id", rawID).Msg("fetching customer")

	id, ok := parseID(rawID)
	if !ok {
		return model.Customer{}, errs.NewNotFoundError(CustomerNotFoundMessage)
	}

	customer, err := cs.repo.GetByID(id)
	if err != nil {
		return model.Customer{}, errs.NewNotFoundError(CustomerNotFoundMessage).WithCause(err)
	}
	return customer, nil
}

// CreateCustomer registers a customer. The input is validated first; the
// stored record has every field trimmed.
func (cs *CustomerService) CreateCustomer(ctx context.Context, in *CreateCustomerInput) (model.Customer, error) {
	if err := in.Validate(); err != nil {
		return model.Customer{}, validation.ToHTTPError(err)
	}

	customer := cs.repo.Create(
		strings.TrimSpace(in.FirstName),
		strings.TrimSpace(in.LastName),
		strings.TrimSpace(in.PhoneNumber),
	)
	customersCreated.Inc()

	loggerFrom(ctx, cs.server.Logger).Info().
		Int("customer_id", customer.ID).
		Str("first_name", customer.FirstName).
		Str("last_name", customer.LastName).
		Msg("customer created")

	return customer, nil
}
