package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	FindAll(ctx context.Context) ([]entity.DoctorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
}
