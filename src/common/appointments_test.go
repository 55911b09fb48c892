package common

import (
	"hms/src/db"
	"hms/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func patientRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone"}).
		AddRow(1, "Jane", "Doe", "jane@example.com", "555-0100")
}

func doctorUserRows(id uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "role"}).
		AddRow(id, "drwho", "doctor")
}

func lastTokenRows(token uint) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "doctor_id", "token_number"})
	if token > 0 {
		rows.AddRow(1, 9, token)
	}
	return rows
}

func expectBooking(mock sqlmock.Sqlmock, lastToken uint, newID int64) {
	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnRows(patientRows())
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(doctorUserRows(9))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1 AND appointment_day = \$2`).
		WillReturnRows(lastTokenRows(lastToken))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID))
	mock.ExpectCommit()
}

func TestCreateAppointmentAllocatesFirstToken(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBooking(mock, 0, 10)

	appointment, patient, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       1,
		DoctorUserID:    9,
		AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		CallerID:        2,
		CallerRole:      types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), appointment.TokenNumber)
	assert.Equal(t, types.APPOINTMENT_PENDING, appointment.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), appointment.AppointmentDay)
	assert.Equal(t, "jane@example.com", patient.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentIncrementsToken(t *testing.T) {
	_, mock := db.GetMockDB()
	expectBooking(mock, 2, 11)

	appointment, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       1,
		DoctorUserID:    9,
		AppointmentDate: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		CallerID:        2,
		CallerRole:      types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), appointment.TokenNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentTokenResetsAcrossDays(t *testing.T) {
	// Scenario: two bookings on 2024-05-01 take tokens 1 and 2, a third on
	// 2024-05-02 starts over at 1.
	_, mock := db.GetMockDB()
	expectBooking(mock, 0, 21)
	expectBooking(mock, 1, 22)
	expectBooking(mock, 0, 23)

	mayFirst := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	first, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID: 1, DoctorUserID: 9, AppointmentDate: mayFirst,
		CallerID: 2, CallerRole: types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), first.TokenNumber)

	second, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID: 1, DoctorUserID: 9, AppointmentDate: mayFirst.Add(2 * time.Hour),
		CallerID: 2, CallerRole: types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(2), second.TokenNumber)
	assert.Equal(t, first.AppointmentDay, second.AppointmentDay)

	third, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID: 1, DoctorUserID: 9, AppointmentDate: mayFirst.AddDate(0, 0, 1),
		CallerID: 2, CallerRole: types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), third.TokenNumber)
	assert.NotEqual(t, first.AppointmentDay, third.AppointmentDay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentRetriesOnSameDayCollision(t *testing.T) {
	// A concurrent booking for the same doctor and day at a different time
	// of day lands on the same (doctor_id, appointment_day, token_number)
	// key, so the insert trips the unique index even though the timestamps
	// differ.
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnRows(patientRows())
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(doctorUserRows(9))
	// first attempt loses the race on the unique index
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1 AND appointment_day = \$2`).
		WillReturnRows(lastTokenRows(0))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_doctor_day_token"})
	mock.ExpectRollback()
	// second attempt sees the winner's row and takes the next token
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1 AND appointment_day = \$2`).
		WillReturnRows(lastTokenRows(1))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	appointment, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       1,
		DoctorUserID:    9,
		AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		CallerID:        2,
		CallerRole:      types.ROLE_RECEPTIONIST,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(2), appointment.TokenNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       404,
		DoctorUserID:    9,
		AppointmentDate: time.Now(),
		CallerID:        2,
		CallerRole:      types.ROLE_RECEPTIONIST,
	})
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "patient_id", fieldErr.Field)
}

func TestCreateAppointmentRequiresDoctorForReceptionist(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnRows(patientRows())

	_, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       1,
		AppointmentDate: time.Now(),
		CallerID:        2,
		CallerRole:      types.ROLE_RECEPTIONIST,
	})
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "doctor_user_id", fieldErr.Field)
}

func TestCreateAppointmentDoctorBooksForSelf(t *testing.T) {
	_, mock := db.GetMockDB()
	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnRows(patientRows())
	// no users lookup: the caller is the doctor
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1`).
		WillReturnRows(lastTokenRows(0))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
	mock.ExpectCommit()

	appointment, _, err := CreateAppointment(&CreateAppointmentInput{
		PatientID:       1,
		AppointmentDate: time.Now(),
		CallerID:        9,
		CallerRole:      types.ROLE_DOCTOR,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(9), appointment.DoctorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    types.AppointmentStatus
		to      types.AppointmentStatus
		allowed bool
	}{
		{types.APPOINTMENT_PENDING, types.APPOINTMENT_APPROVED, true},
		{types.APPOINTMENT_PENDING, types.APPOINTMENT_REJECTED, true},
		{types.APPOINTMENT_PENDING, types.APPOINTMENT_COMPLETED, false},
		{types.APPOINTMENT_PENDING, types.APPOINTMENT_CANCELLED, false},
		{types.APPOINTMENT_APPROVED, types.APPOINTMENT_CANCELLED, true},
		{types.APPOINTMENT_APPROVED, types.APPOINTMENT_COMPLETED, true},
		{types.APPOINTMENT_APPROVED, types.APPOINTMENT_REJECTED, false},
		{types.APPOINTMENT_REJECTED, types.APPOINTMENT_COMPLETED, false},
		{types.APPOINTMENT_CANCELLED, types.APPOINTMENT_APPROVED, false},
		{types.APPOINTMENT_COMPLETED, types.APPOINTMENT_CANCELLED, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestDayOf(t *testing.T) {
	at := time.Date(2024, 5, 1, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), DayOf(at))
	assert.Equal(t, DayOf(at), DayOf(at.Add(4*time.Hour)))
	assert.NotEqual(t, DayOf(at), DayOf(at.AddDate(0, 0, 1)))
}
