package repositories

import (
	"MediTrack/cache"
	"MediTrack/database"
	"MediTrack/models"
	"MediTrack/workflow"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour
)

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

// withLock runs fn while holding a redis lock on the appointment, retrying
// acquisition a few times before giving up.
func (r *AppointmentRepository) withLock(ctx context.Context, id string, fn func() error) error {
	lockKey := fmt.Sprintf("appointment_lock:%s", id)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	return fn()
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if !workflow.ValidStatus(appointment.Status) {
		return fmt.Errorf("%w: status %q", workflow.ErrValidation, appointment.Status)
	}

	return r.withLock(ctx, appointment.ID, func() error {
		if err := database.DB.Create(appointment).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return r.invalidate(ctx, appointment)
	})
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cached), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = database.DB.
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

// ListForViewer returns the appointments visible to the caller: the ones they
// participate in, scoped by role.
func (r *AppointmentRepository) ListForViewer(ctx context.Context, viewerID string, role workflow.Role) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getViewerCacheKey(viewerID)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cached), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	column := "patient_id"
	if role == workflow.RoleDoctor {
		column = "doctor_id"
	}

	var appointments []models.Appointment
	err = database.DB.
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Where(column+" = ?", viewerID).
		Order("date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

// UpdateStatus moves an appointment to next only if it is still in expected.
// The conditional WHERE turns a lost race into a reported conflict instead of
// a silent overwrite.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, appointment *models.Appointment, expected, next workflow.Status) error {
	return r.withLock(ctx, appointment.ID, func() error {
		result := database.DB.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appointment.ID, expected).
			Update("status", next)
		if result.Error != nil {
			return fmt.Errorf("failed to update appointment status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.casFailure(appointment.ID)
		}
		appointment.Status = next
		return r.invalidate(ctx, appointment)
	})
}

// UpdateSchedule overwrites date and time slot in place, only while the
// appointment is still pending or approved. Status is unchanged.
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, appointment *models.Appointment, date, timeSlot string) error {
	return r.withLock(ctx, appointment.ID, func() error {
		result := database.DB.Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", appointment.ID, []workflow.Status{workflow.StatusPending, workflow.StatusApproved}).
			Updates(map[string]interface{}{"date": date, "time_slot": timeSlot})
		if result.Error != nil {
			return fmt.Errorf("failed to reschedule appointment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.casFailure(appointment.ID)
		}
		appointment.Date = date
		appointment.TimeSlot = timeSlot
		return r.invalidate(ctx, appointment)
	})
}

// RecordTreatment writes the clinical outcome fields and completes the
// appointment in one conditional update. Only an approved appointment
// accepts the write, which also makes re-recording after completion fail.
func (r *AppointmentRepository) RecordTreatment(ctx context.Context, appointment *models.Appointment, treatment, prescription, notes string) error {
	return r.withLock(ctx, appointment.ID, func() error {
		result := database.DB.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appointment.ID, workflow.StatusApproved).
			Updates(map[string]interface{}{
				"treatment":    treatment,
				"prescription": prescription,
				"notes":        notes,
				"status":       workflow.StatusCompleted,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to record treatment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.casFailure(appointment.ID)
		}
		appointment.Treatment = treatment
		appointment.Prescription = prescription
		appointment.Notes = notes
		appointment.Status = workflow.StatusCompleted
		return r.invalidate(ctx, appointment)
	})
}

func (r *AppointmentRepository) Delete(ctx context.Context, appointment *models.Appointment) error {
	return r.withLock(ctx, appointment.ID, func() error {
		if err := database.DB.Delete(&models.Appointment{}, "id = ?", appointment.ID).Error; err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return r.invalidate(ctx, appointment)
	})
}

// casFailure distinguishes a vanished record from a lost race.
func (r *AppointmentRepository) casFailure(id string) error {
	var count int64
	if err := database.DB.Model(&models.Appointment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check appointment existence: %w", err)
	}
	if count == 0 {
		return workflow.ErrNotFound
	}
	return workflow.ErrConflict
}

// invalidate drops the record cache plus both participants' list and stats
// caches so the next read refetches.
func (r *AppointmentRepository) invalidate(ctx context.Context, appointment *models.Appointment) error {
	return r.cache.DeleteBatch(ctx,
		r.getAppointmentCacheKey(appointment.ID),
		r.getViewerCacheKey(appointment.PatientID),
		r.getViewerCacheKey(appointment.DoctorID),
		StatsCacheKey(appointment.PatientID),
		StatsCacheKey(appointment.DoctorID),
	)
}

func (r *AppointmentRepository) getAppointmentCacheKey(id string) string {
	return fmt.Sprintf("appointment_cache:%s", id)
}

func (r *AppointmentRepository) getViewerCacheKey(viewerID string) string {
	return fmt.Sprintf("appointments_cache:%s", viewerID)
}

// StatsCacheKey is the per-viewer key for cached dashboard stats.
func StatsCacheKey(viewerID string) string {
	return fmt.Sprintf("stats_cache:%s", viewerID)
}
