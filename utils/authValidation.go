package utils

import (
	"MediTrack/models"
	"MediTrack/workflow"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
	ErrInvalidSlot        = errors.New("time slot is not one of the bookable slots")
	ErrInvalidDate        = errors.New("date must be a calendar date in YYYY-MM-DD form")
)

// ValidateUserData validates registration data using ozzo-validation.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&user.Role, validation.Required, validation.In("patient", "doctor")),
		validation.Field(&user.Specialization,
			validation.When(user.Role == "doctor", validation.Required.Error("doctors must declare a specialization"))),
	)
}

// BookingInput is the patient-supplied portion of a new appointment.
type BookingInput struct {
	DoctorID   string `json:"doctor_id"`
	Department string `json:"department"`
	Reason     string `json:"reason"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
}

// ValidateBooking validates a booking request.
func ValidateBooking(in BookingInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.DoctorID, validation.Required),
		validation.Field(&in.Department, validation.Required, validation.Length(2, 100)),
		validation.Field(&in.Date, validation.Required, validation.By(validateDate)),
		validation.Field(&in.TimeSlot, validation.Required, validation.By(validateSlot)),
	)
}

// RescheduleInput carries the replacement scheduling fields.
type RescheduleInput struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// ValidateReschedule validates a reschedule request.
func ValidateReschedule(in RescheduleInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Date, validation.Required, validation.By(validateDate)),
		validation.Field(&in.TimeSlot, validation.Required, validation.By(validateSlot)),
	)
}

// TreatmentInput carries the clinical outcome fields.
type TreatmentInput struct {
	Treatment    string `json:"treatment"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// ValidateTreatment validates a treatment-recording request. Notes are optional.
func ValidateTreatment(in TreatmentInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Treatment, validation.Required),
		validation.Field(&in.Prescription, validation.Required),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

func validateSlot(value interface{}) error {
	label, _ := value.(string)
	if !workflow.ValidSlot(label) {
		return ErrInvalidSlot
	}
	return nil
}

func validateDate(value interface{}) error {
	date, _ := value.(string)
	if !workflow.ValidDate(date) {
		return ErrInvalidDate
	}
	return nil
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
