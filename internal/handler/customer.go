package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/service"
)

// CustomerHandler serves the customer registry.
type CustomerHandler struct {
	Handler
	customers *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

// List answers GET /api/customers.
func (h *CustomerHandler) List(c echo.Context, _ *NoParams) (DataResponse[[]model.Customer], error) {
	return success(h.customers.ListCustomers(c.Request().Context())), nil
}

// Get answers GET /api/customers/:id.
func (h *CustomerHandler) Get(c echo.Context, req *IDParams) (DataResponse[model.Customer], error) {
	customer, err := h.customers.GetCustomer(c.Request().Context(), req.ID)
	if err != nil {
		return DataResponse[model.Customer]{}, err
	}
	return success(customer), nil
}

// Create answers POST /api/customers with 201 and the stored record.
func (h *CustomerHandler) Create(c echo.Context, req *service.CreateCustomerInput) (DataResponse[model.Customer], error) {
	customer, err := h.customers.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return DataResponse[model.Customer]{}, err
	}

	res := success(customer)
	res.Message = service.CustomerCreatedMessage
	return res, nil
}
