package service

import "github.com/seon98/Trip-Backend/internal/core/ports"

const (
	defaultLimit = 100
	maxLimit     = 100
)

// normalizePage clamps skip to >= 0 and limit to 1..maxLimit.
func normalizePage(p ports.Page) ports.Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
