// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// Errors the service layer marks as handled (invalid input, unknown
// ids, contact form failures) are answered here in the
// {"success": false, "error": "..."} envelope; everything else goes
// to the global error handler.
package handler
