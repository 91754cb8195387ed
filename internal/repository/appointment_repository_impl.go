package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	// Omit associations so preloaded patient/doctor rows are never upserted
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor")

	if scope.PatientID != nil {
		query = query.Where("patient_id = ?", *scope.PatientID)
	}
	if scope.DoctorID != nil {
		query = query.Where("doctor_id = ?", *scope.DoctorID)
	}

	var appointments []entity.Appointment
	err := query.Order("date_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{}).Error
}

// ExistsAtSlot runs the OR-query over both uniqueness axes. It is an advisory
// pre-check only: the composite unique indexes remain the final authority
// under concurrent writers.
func (r *appointmentRepository) ExistsAtSlot(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("(doctor_id = ? OR patient_id = ?) AND date_time = ?", doctorID, patientID, at)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
