package services

import (
	"MediTrack/cache"
	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/utils"
	"MediTrack/workflow"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	StatsCacheExpiry = 1 * time.Hour
)

// AppointmentService is the workflow surface for appointment records. Every
// operation takes the caller identity explicitly; there is no ambient session
// state.
type AppointmentService interface {
	Book(ctx context.Context, patientID string, in utils.BookingInput) (*models.Appointment, error)
	List(ctx context.Context, viewerID string, role workflow.Role) ([]models.Appointment, error)
	Stats(ctx context.Context, viewerID string, role workflow.Role) (workflow.Stats, error)
	Transition(ctx context.Context, id string, target workflow.Status, actorID string, role workflow.Role) (*models.Appointment, error)
	Reschedule(ctx context.Context, id string, in utils.RescheduleInput, actorID string, role workflow.Role) (*models.Appointment, error)
	RecordTreatment(ctx context.Context, id string, in utils.TreatmentInput, actorID string, role workflow.Role) (*models.Appointment, error)
	Delete(ctx context.Context, id string, actorID string, role workflow.Role) error
}

type appointmentService struct {
	repository *repositories.AppointmentRepository
	users      repositories.UserRepository
	cache      *cache.Cache
}

func NewAppointmentService(repository *repositories.AppointmentRepository, users repositories.UserRepository, cache *cache.Cache) AppointmentService {
	return &appointmentService{repository: repository, users: users, cache: cache}
}

func (s *appointmentService) Book(ctx context.Context, patientID string, in utils.BookingInput) (*models.Appointment, error) {
	if err := utils.ValidateBooking(in); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrValidation, err)
	}

	doctor, err := s.users.GetUserByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.Role != string(workflow.RoleDoctor) {
		return nil, fmt.Errorf("%w: no such doctor", workflow.ErrValidation)
	}

	appointment := &models.Appointment{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		DoctorID:   in.DoctorID,
		Department: in.Department,
		Reason:     in.Reason,
		Date:       in.Date,
		TimeSlot:   in.TimeSlot,
		Status:     workflow.StatusPending,
	}
	if err := s.repository.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) List(ctx context.Context, viewerID string, role workflow.Role) ([]models.Appointment, error) {
	return s.repository.ListForViewer(ctx, viewerID, role)
}

func (s *appointmentService) Stats(ctx context.Context, viewerID string, role workflow.Role) (workflow.Stats, error) {
	cacheKey := repositories.StatsCacheKey(viewerID)
	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		var stats workflow.Stats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get stats from cache: %v", err)
	}

	appointments, err := s.repository.ListForViewer(ctx, viewerID, role)
	if err != nil {
		return workflow.Stats{}, err
	}

	records := make([]workflow.Record, 0, len(appointments))
	for i := range appointments {
		records = append(records, appointments[i].AsRecord())
	}
	stats := workflow.ComputeStats(records, viewerID, role)

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return stats, nil
	}
	if err := s.cache.Set(ctx, cacheKey, statsJSON, StatsCacheExpiry); err != nil {
		log.Printf("Failed to set stats in cache: %v", err)
	}

	return stats, nil
}

func (s *appointmentService) Transition(ctx context.Context, id string, target workflow.Status, actorID string, role workflow.Role) (*models.Appointment, error) {
	appointment, err := s.loadForActor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	action, err := workflow.ActionForStatus(target, role)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Apply(appointment.Status, action, role)
	if err != nil {
		return nil, err
	}

	if err := s.repository.UpdateStatus(ctx, appointment, appointment.Status, next); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, id string, in utils.RescheduleInput, actorID string, role workflow.Role) (*models.Appointment, error) {
	if err := utils.ValidateReschedule(in); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrValidation, err)
	}

	appointment, err := s.loadForActor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if err := workflow.CanReschedule(appointment.Status); err != nil {
		return nil, err
	}

	if err := s.repository.UpdateSchedule(ctx, appointment, in.Date, in.TimeSlot); err != nil {
		// A concurrent terminal transition surfaces as an invalid state,
		// not a retryable conflict.
		if errors.Is(err, workflow.ErrConflict) {
			return nil, fmt.Errorf("%w: appointment is no longer reschedulable", workflow.ErrInvalidState)
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) RecordTreatment(ctx context.Context, id string, in utils.TreatmentInput, actorID string, role workflow.Role) (*models.Appointment, error) {
	if err := utils.ValidateTreatment(in); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrValidation, err)
	}

	appointment, err := s.loadForActor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if err := workflow.CanRecordTreatment(appointment.Status); err != nil {
		return nil, err
	}
	// Role gate: only the doctor edge reaches completed.
	if _, err := workflow.Apply(appointment.Status, workflow.ActionComplete, role); err != nil {
		return nil, err
	}

	if err := s.repository.RecordTreatment(ctx, appointment, in.Treatment, in.Prescription, in.Notes); err != nil {
		if errors.Is(err, workflow.ErrConflict) {
			return nil, fmt.Errorf("%w: appointment no longer accepts treatment", workflow.ErrInvalidState)
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string, actorID string, role workflow.Role) error {
	appointment, err := s.loadForActor(ctx, id, actorID)
	if err != nil {
		return err
	}
	return s.repository.Delete(ctx, appointment)
}

// loadForActor fetches an appointment and verifies the actor participates in
// it. Non-participants get a not-found rather than a confirmation that the
// record exists.
func (s *appointmentService) loadForActor(ctx context.Context, id, actorID string) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != actorID && appointment.DoctorID != actorID {
		return nil, workflow.ErrNotFound
	}
	return appointment, nil
}
