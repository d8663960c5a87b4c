package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/server"
)

// APIVersion is reported by GET /api.
const APIVersion = "1.0.0"

// Endpoints maps the public entry points of the API.
type Endpoints struct {
	Services  string `json:"services"`
	Contact   string `json:"contact"`
	Customers string `json:"customers"`
	Health    string `json:"health"`
}

// InfoResponse is the body of GET /api.
type InfoResponse struct {
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Endpoints Endpoints `json:"endpoints"`
}

// InfoHandler describes the API.
type InfoHandler struct {
	Handler
}

func NewInfoHandler(s *server.Server) *InfoHandler {
	return &InfoHandler{
		Handler: NewHandler(s),
	}
}

func (h *InfoHandler) GetInfo(_ echo.Context, _ *NoParams) (InfoResponse, error) {
	return InfoResponse{
		Message: "Touch of Elegance API",
		Version: APIVersion,
		Endpoints: Endpoints{
			Services:  "/api/services",
			Contact:   "/api/contact",
			Customers: "/api/customers",
			Health:    "/health",
		},
	}, nil
}
