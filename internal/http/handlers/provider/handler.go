package provider

import "github.com/dealat-next/internal/di"

// Handler merchant staff API handler entry.
// Serves provider owners and their sub-provider staff.
type Handler struct {
	*di.Container
}

// New creates the provider handler
func New(c *di.Container) *Handler {
	return &Handler{Container: c}
}
