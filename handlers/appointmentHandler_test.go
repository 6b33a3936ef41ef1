package handlers

import (
	"MediTrack/middlewares"
	"MediTrack/models"
	"MediTrack/utils"
	"MediTrack/workflow"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAppointmentService satisfies services.AppointmentService with canned
// responses per method.
type stubAppointmentService struct {
	appointment *models.Appointment
	list        []models.Appointment
	stats       workflow.Stats
	err         error
}

func (s *stubAppointmentService) Book(ctx context.Context, patientID string, in utils.BookingInput) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentService) List(ctx context.Context, viewerID string, role workflow.Role) ([]models.Appointment, error) {
	return s.list, s.err
}

func (s *stubAppointmentService) Stats(ctx context.Context, viewerID string, role workflow.Role) (workflow.Stats, error) {
	return s.stats, s.err
}

func (s *stubAppointmentService) Transition(ctx context.Context, id string, target workflow.Status, actorID string, role workflow.Role) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentService) Reschedule(ctx context.Context, id string, in utils.RescheduleInput, actorID string, role workflow.Role) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentService) RecordTreatment(ctx context.Context, id string, in utils.TreatmentInput, actorID string, role workflow.Role) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentService) Delete(ctx context.Context, id string, actorID string, role workflow.Role) error {
	return s.err
}

// newTestRouter wires the handler behind a middleware that injects a fixed
// caller identity, standing in for the token middleware.
func newTestRouter(svc *stubAppointmentService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(middlewares.WithIdentity(c.Request.Context(), userID, role))
		c.Next()
	})

	h := NewAppointmentHandler(svc)
	router.POST("/appointments", h.BookAppointment)
	router.GET("/appointments", h.GetAppointments)
	router.GET("/appointments/stats", h.GetStats)
	router.PUT("/appointments/:id", h.UpdateStatus)
	router.PUT("/appointments/:id/reschedule", h.Reschedule)
	router.PUT("/appointments/:id/treatment", h.RecordTreatment)
	router.DELETE("/appointments/:id", h.DeleteAppointment)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookAppointmentCreated(t *testing.T) {
	svc := &stubAppointmentService{appointment: &models.Appointment{ID: "a1", Status: workflow.StatusPending}}
	router := newTestRouter(svc, "p1", "patient")

	w := doJSON(router, http.MethodPost, "/appointments", gin.H{
		"doctor_id":  "d1",
		"department": "Cardiology",
		"date":       "2025-06-01",
		"time_slot":  "09:00 AM",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, workflow.StatusPending, got.Status)
}

func TestBookAppointmentDoctorForbidden(t *testing.T) {
	svc := &stubAppointmentService{}
	router := newTestRouter(svc, "d1", "doctor")

	w := doJSON(router, http.MethodPost, "/appointments", gin.H{"doctor_id": "d1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetStats(t *testing.T) {
	svc := &stubAppointmentService{stats: workflow.Stats{Total: 5, Upcoming: 3, Completed: 1, Cancelled: 1}}
	router := newTestRouter(svc, "p1", "patient")

	w := doJSON(router, http.MethodGet, "/appointments/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got workflow.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, workflow.Stats{Total: 5, Upcoming: 3, Completed: 1, Cancelled: 1}, got)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", workflow.ErrValidation, http.StatusBadRequest},
		{"not found", workflow.ErrNotFound, http.StatusNotFound},
		{"conflict", workflow.ErrConflict, http.StatusConflict},
		{"invalid transition", workflow.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"invalid state", workflow.ErrInvalidState, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAppointmentService{err: tc.err}
			router := newTestRouter(svc, "d1", "doctor")

			w := doJSON(router, http.MethodPut, "/appointments/a1", gin.H{"status": "approved"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRescheduleOK(t *testing.T) {
	svc := &stubAppointmentService{appointment: &models.Appointment{ID: "a1", Date: "2025-06-02", TimeSlot: "02:00 PM"}}
	router := newTestRouter(svc, "p1", "patient")

	w := doJSON(router, http.MethodPut, "/appointments/a1/reschedule", gin.H{
		"date":      "2025-06-02",
		"time_slot": "02:00 PM",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2025-06-02", got.Date)
	assert.Equal(t, "02:00 PM", got.TimeSlot)
}

func TestRecordTreatmentOK(t *testing.T) {
	svc := &stubAppointmentService{appointment: &models.Appointment{
		ID:           "a1",
		Status:       workflow.StatusCompleted,
		Treatment:    "rest",
		Prescription: "ibuprofen",
	}}
	router := newTestRouter(svc, "d1", "doctor")

	w := doJSON(router, http.MethodPut, "/appointments/a1/treatment", gin.H{
		"treatment":    "rest",
		"prescription": "ibuprofen",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, workflow.StatusCompleted, got.Status)
	assert.Equal(t, "rest", got.Treatment)
}

func TestDeleteAppointment(t *testing.T) {
	svc := &stubAppointmentService{}
	router := newTestRouter(svc, "p1", "patient")

	w := doJSON(router, http.MethodDelete, "/appointments/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingIdentityUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAppointmentHandler(&stubAppointmentService{})
	router.GET("/appointments", h.GetAppointments)

	w := doJSON(router, http.MethodGet, "/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
