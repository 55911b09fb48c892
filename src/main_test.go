package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/types"
	"hms/src/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	mock   sqlmock.Sqlmock
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	_, mock := db.GetMockDB()
	s.mock = mock
	s.router = setupRouter()
	registerRoutes(s.router)
}

func (s *APITestSuite) request(method, target string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) userRows(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "role", "is_superuser"}).
		AddRow(user.ID, user.Username, user.Email, user.Password, user.Role, user.IsSuperuser)
}

// expectAuthUser queues the user lookup the auth middleware performs and
// returns a signed access token for the same user.
func (s *APITestSuite) expectAuthUser(user *models.User) string {
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(s.userRows(user))
	token, err := utils.GenerateAccessToken(user)
	s.Require().NoError(err)
	return token
}

func (s *APITestSuite) adminUser() *models.User {
	return &models.User{ID: 1, Username: "admin", Role: types.ROLE_ADMIN}
}

func (s *APITestSuite) doctorUser() *models.User {
	return &models.User{ID: 9, Username: "drwho", Role: types.ROLE_DOCTOR}
}

func (s *APITestSuite) receptionistUser() *models.User {
	return &models.User{ID: 2, Username: "frontdesk", Role: types.ROLE_RECEPTIONIST}
}

func (s *APITestSuite) TestPing() {
	w := s.request(http.MethodGet, "/ping", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("pong", gjson.Get(w.Body.String(), "message").String())
}

func (s *APITestSuite) TestUnauthenticatedRequest() {
	w := s.request(http.MethodGet, "/api/patients", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestRefreshTokenRejectedAsBearer() {
	refresh, err := utils.GenerateRefreshToken(s.adminUser())
	s.Require().NoError(err)
	w := s.request(http.MethodGet, "/api/patients", nil, refresh)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestRegisterShortPassword() {
	w := s.request(http.MethodPost, "/api/auth/register", gin.H{
		"username": "newuser",
		"password": "short",
	}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestRegisterDefaultsToReceptionist() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	s.mock.ExpectCommit()

	w := s.request(http.MethodPost, "/api/auth/register", gin.H{
		"username": "newuser",
		"password": "longenough",
	}, "")
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("newuser", gjson.Get(w.Body.String(), "username").String())
	s.Equal("receptionist", gjson.Get(w.Body.String(), "role").String())
	s.Empty(gjson.Get(w.Body.String(), "password").String())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestRegisterDuplicateUsername() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	s.mock.ExpectRollback()

	w := s.request(http.MethodPost, "/api/auth/register", gin.H{
		"username": "newuser",
		"password": "longenough",
	}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "already exists")
}

func (s *APITestSuite) TestLoginWrongPassword() {
	hash, err := utils.HashPassword("right-password")
	s.Require().NoError(err)
	user := s.receptionistUser()
	user.Password = hash
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(s.userRows(user))

	w := s.request(http.MethodPost, "/api/auth/login", gin.H{
		"username": "frontdesk",
		"password": "wrong-password",
	}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("No active account found with the given credentials", gjson.Get(w.Body.String(), "detail").String())
}

func (s *APITestSuite) TestLoginIssuesTokenPair() {
	hash, err := utils.HashPassword("right-password")
	s.Require().NoError(err)
	user := s.receptionistUser()
	user.Password = hash
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(s.userRows(user))

	w := s.request(http.MethodPost, "/api/auth/login", gin.H{
		"username": "frontdesk",
		"password": "right-password",
	}, "")
	s.Equal(http.StatusOK, w.Code)

	access := gjson.Get(w.Body.String(), "access").String()
	refresh := gjson.Get(w.Body.String(), "refresh").String()
	accessClaims, err := utils.ParseToken(access)
	s.NoError(err)
	s.Equal("access", accessClaims.TokenType)
	refreshClaims, err := utils.ParseToken(refresh)
	s.NoError(err)
	s.Equal("refresh", refreshClaims.TokenType)
	s.NotEmpty(refreshClaims.ID)
}

func (s *APITestSuite) TestRefreshRejectsBlacklistedToken() {
	refresh, err := utils.GenerateRefreshToken(s.receptionistUser())
	s.Require().NoError(err)
	claims, err := utils.ParseToken(refresh)
	s.Require().NoError(err)

	rd, rdMock := redismock.NewClientMock()
	lib.NewRedisClient(rd)
	rdMock.ExpectExists(fmt.Sprintf("blacklist:%s", claims.ID)).SetVal(1)

	w := s.request(http.MethodPost, "/api/auth/token/refresh", gin.H{"refresh": refresh}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Token is blacklisted", gjson.Get(w.Body.String(), "detail").String())
	s.NoError(rdMock.ExpectationsWereMet())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestRefreshIssuesNewAccessToken() {
	user := s.receptionistUser()
	refresh, err := utils.GenerateRefreshToken(user)
	s.Require().NoError(err)
	claims, err := utils.ParseToken(refresh)
	s.Require().NoError(err)

	rd, rdMock := redismock.NewClientMock()
	lib.NewRedisClient(rd)
	rdMock.ExpectExists(fmt.Sprintf("blacklist:%s", claims.ID)).SetVal(0)
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(s.userRows(user))

	w := s.request(http.MethodPost, "/api/auth/token/refresh", gin.H{"refresh": refresh}, "")
	s.Equal(http.StatusOK, w.Code)
	accessClaims, err := utils.ParseToken(gjson.Get(w.Body.String(), "access").String())
	s.NoError(err)
	s.Equal("access", accessClaims.TokenType)
}

func (s *APITestSuite) TestLogoutRequiresRefreshToken() {
	user := s.adminUser()
	token := s.expectAuthUser(user)

	w := s.request(http.MethodPost, "/api/auth/logout", gin.H{}, token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestLogoutBlacklistsToken() {
	user := s.adminUser()
	token := s.expectAuthUser(user)
	refresh, err := utils.GenerateRefreshToken(user)
	s.Require().NoError(err)
	claims, err := utils.ParseToken(refresh)
	s.Require().NoError(err)

	rd, rdMock := redismock.NewClientMock()
	lib.NewRedisClient(rd)
	// the TTL is computed from the token expiry at handler time, so only
	// match on the command and key
	rdMock.CustomMatch(func(expected, actual []interface{}) error {
		return nil
	}).ExpectSet(fmt.Sprintf("blacklist:%s", claims.ID), "1", utils.RefreshTokenTTL).SetVal("OK")

	w := s.request(http.MethodPost, "/api/auth/logout", gin.H{"refresh": refresh}, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Logged out successfully", gjson.Get(w.Body.String(), "detail").String())
}

func (s *APITestSuite) TestDoctorCannotBookAppointment() {
	token := s.expectAuthUser(s.doctorUser())

	w := s.request(http.MethodPost, "/api/appointments", gin.H{
		"patient_id":       1,
		"appointment_date": time.Now().Format(time.RFC3339),
	}, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Insufficient role permissions", gjson.Get(w.Body.String(), "detail").String())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestDoctorCannotWritePatients() {
	token := s.expectAuthUser(s.doctorUser())

	w := s.request(http.MethodDelete, "/api/patients/1", nil, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestAppointmentListNarrowedForDoctor() {
	user := s.doctorUser()
	token := s.expectAuthUser(user)
	s.mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "status", "token_number"}).
			AddRow(1, 1, user.ID, "pending", 1))
	// preloads for the returned row
	s.mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(s.userRows(user))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(1, "Jane"))

	w := s.request(http.MethodGet, "/api/appointments", nil, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(1), gjson.Get(w.Body.String(), "count").Int())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestAppointmentListUnfilteredForAdmin() {
	token := s.expectAuthUser(s.adminUser())
	s.mock.ExpectQuery(`SELECT \* FROM "appointments" ORDER BY appointment_date`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := s.request(http.MethodGet, "/api/appointments", nil, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(0), gjson.Get(w.Body.String(), "count").Int())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) appointmentRows(id uint, doctorID uint, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "status", "token_number"}).
		AddRow(id, 1, doctorID, status, 1)
}

func (s *APITestSuite) TestApproveByAssignedDoctor() {
	user := s.doctorUser()
	token := s.expectAuthUser(user)
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, user.ID, "pending"))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	w := s.request(http.MethodPost, "/api/appointments/3/approve", nil, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("approved", gjson.Get(w.Body.String(), "data.status").String())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestApproveByUnassignedDoctor() {
	user := s.doctorUser()
	token := s.expectAuthUser(user)
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, user.ID+1, "pending"))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := s.request(http.MethodPost, "/api/appointments/3/approve", nil, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestIllegalStatusTransition() {
	token := s.expectAuthUser(s.adminUser())
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, 9, "completed"))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := s.request(http.MethodPost, "/api/appointments/3/approve", nil, token)
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(gjson.Get(w.Body.String(), "detail").String(), "Cannot transition appointment")
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestUpdateAppointmentRepointsPatient() {
	token := s.expectAuthUser(s.receptionistUser())
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, 9, "pending"))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "doctor_id", "status", "token_number"}).
			AddRow(3, 2, 9, "pending", 1))

	w := s.request(http.MethodPatch, "/api/appointments/3", gin.H{"patient_id": 2}, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(2), gjson.Get(w.Body.String(), "data.patient_id").Int())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestUpdateAppointmentUnknownPatient() {
	token := s.expectAuthUser(s.receptionistUser())
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, 9, "pending"))
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := s.request(http.MethodPatch, "/api/appointments/3", gin.H{"patient_id": 404}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "patient_id")
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestMoveAppointmentDateTokenConflict() {
	token := s.expectAuthUser(s.receptionistUser())
	s.mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(s.appointmentRows(3, 9, "pending"))
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_doctor_day_token"})
	s.mock.ExpectRollback()

	w := s.request(http.MethodPatch, "/api/appointments/3", gin.H{
		"appointment_date": time.Now().AddDate(0, 0, 1).Format(time.RFC3339),
	}, token)
	s.Equal(http.StatusConflict, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestCreatePatient() {
	token := s.expectAuthUser(s.receptionistUser())
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	s.mock.ExpectCommit()

	w := s.request(http.MethodPost, "/api/patients", gin.H{
		"first_name": "Jane",
		"last_name":  "Doe",
		"dob":        "1990-04-02",
		"gender":     "female",
		"phone":      "555-0100",
	}, token)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal(int64(12), gjson.Get(w.Body.String(), "data.id").Int())
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestCreatePatientInvalidBloodGroup() {
	token := s.expectAuthUser(s.receptionistUser())

	w := s.request(http.MethodPost, "/api/patients", gin.H{
		"first_name":  "Jane",
		"last_name":   "Doe",
		"dob":         "1990-04-02",
		"gender":      "female",
		"phone":       "555-0100",
		"blood_group": "Z+",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestCreatePatientInvalidDob() {
	token := s.expectAuthUser(s.receptionistUser())

	w := s.request(http.MethodPost, "/api/patients", gin.H{
		"first_name": "Jane",
		"last_name":  "Doe",
		"dob":        "02/04/1990",
		"gender":     "female",
		"phone":      "555-0100",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APITestSuite) TestPatientNotFound() {
	token := s.expectAuthUser(s.adminUser())
	s.mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := s.request(http.MethodGet, "/api/patients/404", nil, token)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestDashboardStats() {
	token := s.expectAuthUser(s.adminUser())
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "beds" WHERE is_occupied = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	w := s.request(http.MethodGet, "/api/dashboard/stats", nil, token)
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Equal(int64(42), gjson.Get(body, "total_patients").Int())
	s.Equal(int64(7), gjson.Get(body, "total_doctors").Int())
	s.Equal(int64(120), gjson.Get(body, "total_appointments").Int())
	s.Equal(int64(15), gjson.Get(body, "beds_available").Int())
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
