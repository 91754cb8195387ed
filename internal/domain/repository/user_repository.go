package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// CreateWithProfile inserts the user and its doctor profile in one
	// transaction.
	CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.DoctorProfile) error

	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
