package ports

import (
	"context"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

// UserRepository is the authoritative source for staff accounts. FindByEmail
// expects an already-normalized email (see domain.NormalizeEmail).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}
