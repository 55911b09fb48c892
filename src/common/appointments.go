package common

import (
	"errors"
	"fmt"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTokenConflict is returned when the token allocation retries are
// exhausted; callers surface it as a retryable 409.
var ErrTokenConflict = errors.New("could not allocate a unique token number")

const tokenAllocationRetries = 3

// FieldError is a validation failure naming the offending field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type CreateAppointmentInput struct {
	PatientID       uint
	DoctorUserID    uint
	AppointmentDate time.Time
	Reason          string
	CallerID        uint
	CallerRole      types.Role
}

// DayOf truncates a timestamp to midnight; it is the value stored in
// Appointment.AppointmentDay and keyed by the unique index.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ResolveAppointmentDoctor applies the booking rules: a doctor-role caller
// always books for themselves; anyone else must name a doctor-role user.
func ResolveAppointmentDoctor(gdb *gorm.DB, callerID uint, callerRole types.Role, doctorUserID uint) (uint, error) {
	if callerRole == types.ROLE_DOCTOR {
		return callerID, nil
	}
	if doctorUserID == 0 {
		return 0, &FieldError{Field: "doctor_user_id", Message: "Provide doctor_user_id (admin/receptionist only)"}
	}
	var doctor models.User
	err := gdb.
		Model(&models.User{}).
		Where(&models.User{ID: doctorUserID, Role: types.ROLE_DOCTOR}).
		First(&doctor).
		Error
	if err != nil {
		return 0, &FieldError{Field: "doctor_user_id", Message: "Invalid doctor user id"}
	}
	return doctor.ID, nil
}

// CreateAppointment books an appointment and allocates the next token
// number for the doctor's calendar day. The scan and the insert run in one
// transaction with the day's newest row locked; a concurrent insert that
// slips past the lock (empty day, or a snapshot that predates the winner's
// row) lands on the same (doctor, day, token) key, trips the unique index
// and the allocation is retried.
func CreateAppointment(input *CreateAppointmentInput) (*models.Appointment, *models.Patient, error) {
	gdb := db.GetDb()

	var patient models.Patient
	if err := gdb.
		Model(&models.Patient{}).
		Where(&models.Patient{ID: input.PatientID}).
		First(&patient).
		Error; err != nil {
		return nil, nil, &FieldError{Field: "patient_id", Message: "Invalid patient_id"}
	}

	doctorID, err := ResolveAppointmentDoctor(gdb, input.CallerID, input.CallerRole, input.DoctorUserID)
	if err != nil {
		return nil, nil, err
	}

	day := DayOf(input.AppointmentDate)
	createdBy := input.CallerID

	var appointment *models.Appointment
	for attempt := 0; attempt < tokenAllocationRetries; attempt++ {
		appointment = nil
		err = gdb.Transaction(func(tx *gorm.DB) error {
			var last models.Appointment
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Model(&models.Appointment{}).
				Where("doctor_id = ? AND appointment_day = ?", doctorID, day).
				Order("token_number DESC").
				Limit(1).
				Find(&last).
				Error
			if err != nil {
				return err
			}
			next := &models.Appointment{
				PatientID:       input.PatientID,
				DoctorID:        doctorID,
				AppointmentDate: input.AppointmentDate,
				AppointmentDay:  day,
				Reason:          input.Reason,
				Status:          types.APPOINTMENT_PENDING,
				TokenNumber:     last.TokenNumber + 1,
				CreatedByID:     &createdBy,
			}
			if err := tx.Create(next).Error; err != nil {
				return err
			}
			appointment = next
			return nil
		})
		if err == nil {
			return appointment, &patient, nil
		}
		if !IsUniqueViolation(err) {
			return nil, nil, err
		}
		log.Printf("Token collision for doctor [%d] on %s, retrying\n", doctorID, day.Format("2006-01-02"))
	}
	return nil, nil, ErrTokenConflict
}

var statusFlow = map[types.AppointmentStatus][]types.AppointmentStatus{
	types.APPOINTMENT_PENDING:  {types.APPOINTMENT_APPROVED, types.APPOINTMENT_REJECTED},
	types.APPOINTMENT_APPROVED: {types.APPOINTMENT_CANCELLED, types.APPOINTMENT_COMPLETED},
}

func CanTransition(from types.AppointmentStatus, to types.AppointmentStatus) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}
