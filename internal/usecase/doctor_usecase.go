package usecase

import (
	"context"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewDoctorUsecase(log *logrus.Logger, doctorProfileRepo repository.DoctorProfileRepository) DoctorUsecase {
	return &doctorUsecase{
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorProfilesToResponses(profiles), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorProfileToResponse(profile), nil
}
