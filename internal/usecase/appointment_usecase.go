package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAppointmentOwner = errors.New("not authorized to access this appointment")
	ErrDoctorNotFound      = errors.New("no doctor with that id")
	ErrRequesterMissing    = errors.New("user not found in context")
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	accessPolicy    *service.AccessPolicy
	conflictGuard   *service.ConflictGuard
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	accessPolicy *service.AccessPolicy,
	conflictGuard *service.ConflictGuard,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		accessPolicy:    accessPolicy,
		conflictGuard:   conflictGuard,
		auditService:    auditService,
	}
}

// requesterFromContext reads the identity placed in the context by the auth
// middleware.
func requesterFromContext(ctx context.Context) (uuid.UUID, int, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, ErrRequesterMissing
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, ErrRequesterMissing
	}
	return userID, roleID, nil
}

// ListAppointments returns the appointments visible to the requester:
// patients see their own, doctors theirs, admins everything.
func (u *appointmentUsecase) ListAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	requesterID, roleID, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scope, err := u.accessPolicy.ListScope(requesterID, roleID)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, scope)
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", requesterID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	requesterID, roleID, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !u.accessPolicy.CanRead(requesterID, roleID, appointment) {
		return nil, ErrNotAppointmentOwner
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CreateAppointment books a slot for the requester as patient.
//
// Flow:
// 1. Resolve the doctor and verify role (404 when absent or not a doctor)
// 2. ConflictGuard pre-check (future date, both uniqueness axes)
// 3. Insert; a unique violation raced in by a concurrent writer is
//    translated back into the same slot-taken error
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	requesterID, _, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.userRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	if err := u.conflictGuard.CheckCreate(ctx, req.DoctorID, requesterID, req.DateTime, time.Now()); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       requesterID,
		DoctorID:        req.DoctorID,
		DateTime:        req.DateTime,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Status:          entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		err = u.conflictGuard.TranslateWriteError(err)
		if !errors.Is(err, service.ErrSlotTaken) {
			u.log.Errorf("Failed to create appointment: %+v", err)
		}
		return nil, err
	}

	u.auditService.LogCreate(ctx, &requesterID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), appointment)

	// Reload with patient/doctor summaries for the response
	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, patient=%s, at=%s",
		appointment.ID, req.DoctorID, requesterID, req.DateTime.Format(time.RFC3339))
	return converter.AppointmentToResponse(full), nil
}

// UpdateAppointment applies a partial update. The conflict check only runs
// when the payload carries a new date_time; moving an appointment onto its
// own current slot succeeds because the check excludes the record itself.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	requesterID, roleID, err := requesterFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !u.accessPolicy.CanWrite(requesterID, roleID, appointment) {
		return nil, ErrNotAppointmentOwner
	}

	oldValue := converter.AppointmentToResponse(appointment)

	if req.DoctorID != nil && *req.DoctorID != appointment.DoctorID {
		// Changing the doctor re-runs the creation-time role check
		doctor, err := u.userRepo.FindByID(ctx, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if doctor == nil || !doctor.IsDoctor() || !doctor.IsActive {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = *req.DoctorID
		appointment.Doctor = *doctor
	}

	if req.DateTime != nil {
		if err := u.conflictGuard.CheckUpdate(ctx, appointment.ID,
			appointment.DoctorID, appointment.PatientID, *req.DateTime, time.Now()); err != nil {
			return nil, err
		}
		appointment.DateTime = *req.DateTime
	}

	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		err = u.conflictGuard.TranslateWriteError(err)
		if !errors.Is(err, service.ErrSlotTaken) {
			u.log.Errorf("Failed to update appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.auditService.LogUpdate(ctx, &requesterID, entity.AuditActionAppointmentUpdate,
		"appointment", appointment.ID.String(), oldValue, appointment)

	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	return converter.AppointmentToResponse(full), nil
}

// DeleteAppointment hard-deletes the record after the owner-or-admin check.
// No conflict check applies.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	requesterID, roleID, err := requesterFromContext(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if !u.accessPolicy.CanWrite(requesterID, roleID, appointment) {
		return ErrNotAppointmentOwner
	}

	if err := u.appointmentRepo.Delete(ctx, id); err != nil {
		u.log.Errorf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, &requesterID, entity.AuditActionAppointmentDelete,
		"appointment", id.String(), converter.AppointmentToResponse(appointment))

	u.log.Infof("Appointment deleted: id=%s, by=%s", id, requesterID)
	return nil
}
