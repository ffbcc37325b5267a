// Package server implements the HTTPS server for the webcam highlighter.
//
// The server hands the browser a small static page that opens the webcam,
// and exposes a JSON/PNG API the page talks to:
//
// Range Configuration:
//   - GET /api/range: Current HSL acceptance window
//   - PUT /api/range: Partial update of the window (slider changes)
//
// Processing:
//   - POST /api/process: Upload a snapshot, get the highlighted PNG back
//   - POST /api/snapshot: Queue a snapshot for the capture loop
//   - GET /api/processed: Latest capture loop output
//
// Debug Helpers:
//   - GET /api/hsl: RGB to HSL conversion
//   - GET /api/filters: Channel preview filter names
//
// # Errors
//
// Failures are reported with a matching HTTP status and a JSON body:
//
//	{"error": {"code": 400, "message": "Invalid params", "data": "..."}}
//
// # Transport
//
// Browsers only grant camera access to secure origins, so the server speaks
// TLS by default using the configured certificate and key. Plain HTTP is
// available for local development behind a TLS-terminating proxy.
package server
