package service

import (
	"context"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/repository"
	"github.com/deppfellow/touch-of-elegance/internal/server"
)

const ServiceNotFoundMessage = "Service not found"

// CatalogService answers questions about the fixed service catalog.
type CatalogService struct {
	server *server.Server
	repo   *repository.ServiceRepository
}

func NewCatalogService(s *server.Server, repo *repository.ServiceRepository) *CatalogService {
	return &CatalogService{server: s, repo: repo}
}

// ListServices returns the whole catalog in its fixed order.
func (cs *CatalogService) ListServices(ctx context.Context) []model.Service {
	loggerFrom(ctx, cs.server.Logger).Info().Msg("fetching all services")
	return cs.repo.ListAll()
}

// GetService looks up a service by its raw path id.
func (cs *CatalogService) GetService(ctx context.Context, rawID string) (model.Service, error) {
	loggerFrom(ctx, cs.server.Logger).Info().Str("id", rawID).Msg("fetching service")

	id, ok := parseID(rawID)
	if !ok {
		return model.Service{}, errs.NewNotFoundError(ServiceNotFoundMessage)
	}

	svc, err := cs.repo.GetByID(id)
	if err != nil {
		return model.Service{}, errs.NewNotFoundError(ServiceNotFoundMessage).WithCause(err)
	}
	return svc, nil
}
