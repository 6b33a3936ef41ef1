package utils

import (
	"MediTrack/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validUser() models.User {
	return models.User{
		Name:     "Jane Smith",
		Email:    "jane@example.com",
		Password: "Str0ng@Pass",
		Role:     "patient",
	}
}

func TestValidateUserData(t *testing.T) {
	assert.NoError(t, ValidateUserData(validUser()))

	u := validUser()
	u.Email = "not-an-email"
	assert.Error(t, ValidateUserData(u))

	u = validUser()
	u.Role = "admin"
	assert.Error(t, ValidateUserData(u))

	u = validUser()
	u.Password = "short"
	assert.Error(t, ValidateUserData(u))

	u = validUser()
	u.Password = "alllowercase1"
	assert.Error(t, ValidateUserData(u))
}

func TestValidateUserDataDoctorSpecialization(t *testing.T) {
	u := validUser()
	u.Role = "doctor"
	assert.Error(t, ValidateUserData(u), "doctor without specialization")

	u.Specialization = "Cardiology"
	assert.NoError(t, ValidateUserData(u))
}

func TestValidateBooking(t *testing.T) {
	in := BookingInput{
		DoctorID:   "d1",
		Department: "Cardiology",
		Date:       "2025-06-01",
		TimeSlot:   "09:00 AM",
	}
	assert.NoError(t, ValidateBooking(in))

	bad := in
	bad.TimeSlot = "08:30 AM"
	assert.Error(t, ValidateBooking(bad))

	bad = in
	bad.Date = "01/06/2025"
	assert.Error(t, ValidateBooking(bad))

	bad = in
	bad.DoctorID = ""
	assert.Error(t, ValidateBooking(bad))

	bad = in
	bad.Department = ""
	assert.Error(t, ValidateBooking(bad))
}

func TestValidateReschedule(t *testing.T) {
	assert.NoError(t, ValidateReschedule(RescheduleInput{Date: "2025-06-02", TimeSlot: "02:00 PM"}))
	assert.Error(t, ValidateReschedule(RescheduleInput{Date: "", TimeSlot: "02:00 PM"}))
	assert.Error(t, ValidateReschedule(RescheduleInput{Date: "2025-06-02", TimeSlot: "03:00 PM"}))
}

func TestValidateTreatment(t *testing.T) {
	assert.NoError(t, ValidateTreatment(TreatmentInput{Treatment: "rest", Prescription: "ibuprofen"}))
	assert.NoError(t, ValidateTreatment(TreatmentInput{Treatment: "rest", Prescription: "ibuprofen", Notes: "follow up in a week"}))
	assert.Error(t, ValidateTreatment(TreatmentInput{Prescription: "ibuprofen"}))
	assert.Error(t, ValidateTreatment(TreatmentInput{Treatment: "rest"}))
}

func TestValidatePasswordReset(t *testing.T) {
	assert.NoError(t, ValidatePasswordReset("123456", "Str0ng@Pass"))
	assert.Error(t, ValidatePasswordReset("", "Str0ng@Pass"))
	assert.Error(t, ValidatePasswordReset("123456", "weak"))
}
