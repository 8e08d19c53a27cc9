package public

import "github.com/dealat-next/internal/di"

// Handler public and end-user API handler entry.
// Serves guest browsing plus the authenticated user side.
type Handler struct {
	*di.Container
}

// New creates the public handler
func New(c *di.Container) *Handler {
	return &Handler{Container: c}
}
