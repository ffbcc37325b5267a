package server

import "net/http"

// Route describes one API endpoint.
type Route struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`

	handler http.HandlerFunc
}

// routeTable returns every API endpoint with its handler.
func (s *Server) routeTable() []Route {
	return []Route{
		{
			Pattern:     "GET /api",
			Description: "List the available API endpoints.",
			handler:     s.handleIndex,
		},

		// Range configuration
		{
			Pattern:     "GET /api/range",
			Description: "Get the current HSL acceptance window.",
			handler:     s.handleRangeGet,
		},
		{
			Pattern:     "PUT /api/range",
			Description: "Update the HSL acceptance window. Fields left out of the JSON body keep their current value. Hue bounds are degrees in [0,360], saturation and luminance bounds are fractions in [0,1].",
			handler:     s.handleRangePut,
		},

		// Processing
		{
			Pattern:     "POST /api/process",
			Description: "Process an uploaded PNG/JPEG image and return the highlighted frame as PNG. Optional query parameter filter=gray|red|green|blue returns a channel preview instead.",
			handler:     s.handleProcess,
		},
		{
			Pattern:     "POST /api/snapshot",
			Description: "Queue an uploaded image for the capture loop. Only the most recent snapshot is processed.",
			handler:     s.handleSnapshot,
		},
		{
			Pattern:     "GET /api/processed",
			Description: "Get the most recent frame produced by the capture loop as PNG.",
			handler:     s.handleProcessed,
		},

		// Debug helpers
		{
			Pattern:     "GET /api/hsl",
			Description: "Convert an RGB color (query parameters r, g, b in 0-255) to hex and HSL.",
			handler:     s.handleHSL,
		},
		{
			Pattern:     "GET /api/filters",
			Description: "List the channel preview filters accepted by /api/process.",
			handler:     s.handleFilters,
		},
	}
}
