package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/service"
)

// ContactHandler accepts contact form submissions (JSON or url-encoded).
type ContactHandler struct {
	Handler
	contact *service.ContactService
}

func NewContactHandler(s *server.Server, contact *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler: NewHandler(s),
		contact: contact,
	}
}

// Submit answers POST /api/contact.
func (h *ContactHandler) Submit(c echo.Context, req *service.ContactInput) (MessageResponse, error) {
	msg, err := h.contact.Submit(c.Request().Context(), req)
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{Success: true, Message: msg}, nil
}
