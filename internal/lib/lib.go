// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains self-contained building blocks, such as the
// per-client request window used by the rate limiting middleware.
package lib
