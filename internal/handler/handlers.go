package handler

import (
	"io/fs"

	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/service"
)

// Handlers groups every HTTP handler so router setup takes one value.
type Handlers struct {
	Health   *HealthHandler
	Info     *InfoHandler
	Catalog  *CatalogHandler
	Customer *CustomerHandler
	Contact  *ContactHandler
	Landing  *LandingHandler
}

// NewHandlers constructs the handler container. assets is the public
// asset tree the landing page is read from.
func NewHandlers(s *server.Server, services *service.Services, assets fs.FS) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Info:     NewInfoHandler(s),
		Catalog:  NewCatalogHandler(s, services.Catalog),
		Customer: NewCustomerHandler(s, services.Customers),
		Contact:  NewContactHandler(s, services.Contact),
		Landing:  NewLandingHandler(s, assets),
	}
}
