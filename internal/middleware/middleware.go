// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as security headers, compression, CORS, request logging,
// metrics, body checks, rate limiting and panic recovery
package middleware
