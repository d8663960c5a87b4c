package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/service"
)

// CatalogHandler serves the read-only service catalog.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

// List answers GET /api/services.
func (h *CatalogHandler) List(c echo.Context, _ *NoParams) (DataResponse[[]model.Service], error) {
	return success(h.catalog.ListServices(c.Request().Context())), nil
}

// Get answers GET /api/services/:id.
func (h *CatalogHandler) Get(c echo.Context, req *IDParams) (DataResponse[model.Service], error) {
	svc, err := h.catalog.GetService(c.Request().Context(), req.ID)
	if err != nil {
		return DataResponse[model.Service]{}, err
	}
	return success(svc), nil
}
