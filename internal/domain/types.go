package domain

import (
	"math"

	"github.com/goccy/go-json"
)

// --- Shared Types ---

// Response is the envelope every backend endpoint wraps its payload in.
// Data stays raw so each service module can decode into its own type.
type Response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination is stored verbatim by the slices; components derive page-button
// state from it.
type Pagination struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Count   int `json:"count"`
}

// PageQuery is the common shape list operations accept.
type PageQuery struct {
	Page  int
	Limit int
}

// Round2 rounds a monetary amount to cents. All display math mirrors the
// server's computations; the server remains authoritative.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
