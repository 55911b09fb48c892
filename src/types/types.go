package types

import "time"

type Timestamps struct {
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Role string

const (
	ROLE_ADMIN        Role = "admin"
	ROLE_DOCTOR       Role = "doctor"
	ROLE_RECEPTIONIST Role = "receptionist"
)

type AppointmentStatus string

const (
	APPOINTMENT_PENDING   AppointmentStatus = "pending"
	APPOINTMENT_APPROVED  AppointmentStatus = "approved"
	APPOINTMENT_REJECTED  AppointmentStatus = "rejected"
	APPOINTMENT_CANCELLED AppointmentStatus = "cancelled"
	APPOINTMENT_COMPLETED AppointmentStatus = "completed"
)

type LeaveStatus string

const (
	LEAVE_PENDING  LeaveStatus = "pending"
	LEAVE_APPROVED LeaveStatus = "approved"
	LEAVE_REJECTED LeaveStatus = "rejected"
)

type LabStatus string

const (
	LAB_BOOKED      LabStatus = "booked"
	LAB_IN_PROGRESS LabStatus = "in_progress"
	LAB_COMPLETED   LabStatus = "completed"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role" binding:"omitempty,oneof=admin doctor receptionist"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequestBody struct {
	Refresh string `json:"refresh" binding:"required"`
}

type CreatePatientRequestBody struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Dob              string `json:"dob" binding:"required,datetime=2006-01-02"`
	Gender           string `json:"gender" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	Email            string `json:"email" binding:"omitempty,email"`
	Address          string `json:"address"`
	BloodGroup       string `json:"blood_group" binding:"omitempty,bloodgroup"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
	DischargeSummary string `json:"discharge_summary"`
}

type UpdatePatientRequestBody struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Dob              *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Address          *string `json:"address"`
	BloodGroup       *string `json:"blood_group" binding:"omitempty,bloodgroup"`
	EmergencyContact *string `json:"emergency_contact"`
	MedicalHistory   *string `json:"medical_history"`
	DischargeSummary *string `json:"discharge_summary"`
}

type CreateDoctorRequestBody struct {
	UserID         uint   `json:"user_id" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Qualification  string `json:"qualification"`
	Phone          string `json:"phone" binding:"required"`
	Bio            string `json:"bio"`
	IsActive       *bool  `json:"is_active"`
}

type UpdateDoctorRequestBody struct {
	Specialization *string `json:"specialization"`
	Qualification  *string `json:"qualification"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	IsActive       *bool   `json:"is_active"`
}

type CreateDoctorScheduleRequestBody struct {
	DoctorID    uint   `json:"doctor_id" binding:"required"`
	Day         string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime   string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime     string `json:"end_time" binding:"required,datetime=15:04"`
	IsAvailable *bool  `json:"is_available"`
}

type UpdateDoctorScheduleRequestBody struct {
	Day         *string `json:"day" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime   *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	IsAvailable *bool   `json:"is_available"`
}

type CreateDoctorLeaveRequestBody struct {
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
}

type UpdateDoctorLeaveRequestBody struct {
	StartDate *string      `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string      `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Reason    *string      `json:"reason"`
	Status    *LeaveStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

type CreateAppointmentRequestBody struct {
	PatientID       uint      `json:"patient_id" binding:"required"`
	DoctorUserID    uint      `json:"doctor_user_id"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Reason          string    `json:"reason"`
}

type UpdateAppointmentRequestBody struct {
	PatientID       *uint      `json:"patient_id"`
	AppointmentDate *time.Time `json:"appointment_date"`
	Reason          *string    `json:"reason"`
}

type CreateLabTestRequestBody struct {
	PatientID     uint   `form:"patient_id" json:"patient_id" binding:"required"`
	DoctorID      *uint  `form:"doctor_id" json:"doctor_id"`
	TestName      string `form:"test_name" json:"test_name" binding:"required"`
	BookedAt      string `form:"booked_at" json:"booked_at" binding:"required"`
	ResultSummary string `form:"result_summary" json:"result_summary"`
}

type UpdateLabTestRequestBody struct {
	DoctorID      *uint      `form:"doctor_id" json:"doctor_id"`
	TestName      *string    `form:"test_name" json:"test_name"`
	BookedAt      *string    `form:"booked_at" json:"booked_at"`
	ResultSummary *string    `form:"result_summary" json:"result_summary"`
	Status        *LabStatus `form:"status" json:"status" binding:"omitempty,oneof=booked in_progress completed"`
}

type CreateWardRequestBody struct {
	Name      string `json:"name" binding:"required"`
	WardType  string `json:"ward_type" binding:"required"`
	TotalBeds uint   `json:"total_beds"`
}

type UpdateWardRequestBody struct {
	Name      *string `json:"name"`
	WardType  *string `json:"ward_type"`
	TotalBeds *uint   `json:"total_beds"`
}

type CreateBedRequestBody struct {
	WardID           uint   `json:"ward_id" binding:"required"`
	BedNumber        string `json:"bed_number" binding:"required"`
	IsICU            bool   `json:"is_icu"`
	IsOccupied       bool   `json:"is_occupied"`
	CurrentPatientID *uint  `json:"current_patient_id"`
}

type UpdateBedRequestBody struct {
	BedNumber        *string `json:"bed_number"`
	IsICU            *bool   `json:"is_icu"`
	IsOccupied       *bool   `json:"is_occupied"`
	CurrentPatientID *uint   `json:"current_patient_id"`
}

type CreateBedTransferRequestBody struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	FromBedID *uint  `json:"from_bed_id"`
	ToBedID   uint   `json:"to_bed_id" binding:"required"`
	Reason    string `json:"reason"`
}
