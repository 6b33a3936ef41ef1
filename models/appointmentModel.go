package models

import (
	"time"

	"MediTrack/workflow"
)

// Appointment is the join record between a patient and a doctor.
// Status moves only through the workflow engine; treatment, prescription and
// notes are written once by the treatment-recording operation.
type Appointment struct {
	ID           string          `gorm:"primaryKey;column:id" json:"id"`
	PatientID    string          `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID     string          `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Department   string          `gorm:"column:department;not null" json:"department"`
	Reason       string          `gorm:"column:reason" json:"reason"`
	Date         string          `gorm:"column:date;not null;index" json:"date"`
	TimeSlot     string          `gorm:"column:time_slot;not null" json:"time_slot"`
	Status       workflow.Status `gorm:"column:status;check:status IN ('pending', 'approved', 'rejected', 'completed');not null" json:"status"`
	Treatment    string          `gorm:"column:treatment" json:"treatment"`
	Prescription string          `gorm:"column:prescription" json:"prescription"`
	Notes        string          `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Patient      User            `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor       User            `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// AsRecord projects the appointment for the stats aggregator.
func (a *Appointment) AsRecord() workflow.Record {
	return workflow.Record{
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Status:    a.Status,
	}
}
