package ports

import (
	"context"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// Page carries offset paging parameters shared by list queries.
type Page struct {
	Skip  int
	Limit int
}

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has the
	// (normalized) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, page Page) ([]*domain.User, error)
}
