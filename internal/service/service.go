// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// loggerFrom returns the request-scoped logger carried by ctx, or fallback
// when the context has none.
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	if fallback != nil {
		return fallback
	}
	nop := zerolog.Nop()
	return &nop
}

// parseID parses a path identifier. Anything that is not a base-10
// integer reports ok=false and is treated by callers as "not found",
// never as a malformed request.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}
