// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure a single, typed shape
// (HTTPError) carrying its HTTP status, so handlers and the global
// error handler agree on how it is reported to the client.
//
// Two reporting paths exist:
//   - Handled errors (invalid input, unknown ids, the contact form's
//     internal failure) are rendered by the owning handler as
//     {"success": false, "error": "<message>"}.
//   - Everything else reaches the global error handler and is rendered as
//     {"error": {"message": "<message>", "status": <status>}}.
package errs
