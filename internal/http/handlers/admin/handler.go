package admin

import (
	"github.com/dealat-next/internal/di"
)

// Handler back office handler set
type Handler struct {
	*di.Container
}

// New creates the admin handler set
func New(container *di.Container) *Handler {
	return &Handler{Container: container}
}
