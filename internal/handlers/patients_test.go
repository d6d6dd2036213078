package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-app-server/internal/handlers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newPatientRouter(db *gorm.DB) *gin.Engine {
	handler := handlers.NewPatientHandler(db)
	router := gin.New()
	router.POST("/api/patients", handler.CreatePatient)
	router.PUT("/api/patients/:id/status", handler.UpdatePatientStatus)
	return router
}

func putJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func validPatientBody() gin.H {
	return gin.H{
		"firstName":   "Ana",
		"lastName":    "Gómez",
		"nationalId":  "1234567890",
		"age":         30,
		"email":       "ana.gomez@example.com",
		"careType":    "individual",
		"address":     "Calle 10 # 5-21",
		"insurer":     "Sura",
		"therapistId": "therapist-1",
	}
}

func TestCreatePatientRegistersAndEnqueues(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE national_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "therapists" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("therapist-1"))
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "waiting_list_entries"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	recorder := postJSON(t, router, "/api/patients", validPatientBody())

	assert.Equal(t, http.StatusCreated, recorder.Code)
	response := decodeResponse(t, recorder)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "active", data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePatientUnknownTherapist(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE national_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "therapists" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	recorder := postJSON(t, router, "/api/patients", validPatientBody())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "Invalid therapist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePatientDuplicateNationalID(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE national_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("patient-1"))

	recorder := postJSON(t, router, "/api/patients", validPatientBody())

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePatientValidation(t *testing.T) {
	db, _ := newMockDB(t)
	router := newPatientRouter(db)

	tests := []struct {
		name    string
		mutate  func(gin.H)
		message string
	}{
		{
			name:    "name with digits",
			mutate:  func(b gin.H) { b["firstName"] = "Ana123" },
			message: "FirstName may only contain letters and spaces",
		},
		{
			name:    "invalid email",
			mutate:  func(b gin.H) { b["email"] = "not-an-email" },
			message: "Email must be a valid email address",
		},
		{
			name:    "national id with letters",
			mutate:  func(b gin.H) { b["nationalId"] = "12AB34" },
			message: "NationalID may only contain numbers",
		},
		{
			name:    "age above range",
			mutate:  func(b gin.H) { b["age"] = 140 },
			message: "Age must be at most 120",
		},
		{
			name:    "age below range",
			mutate:  func(b gin.H) { b["age"] = -1 },
			message: "Age must be at least 0",
		},
		{
			name:    "missing therapist",
			mutate:  func(b gin.H) { delete(b, "therapistId") },
			message: "TherapistID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validPatientBody()
			tt.mutate(body)
			recorder := postJSON(t, router, "/api/patients", body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			response := decodeResponse(t, recorder)
			assert.Contains(t, response.Error, tt.message)
		})
	}
}

func TestUpdatePatientStatus(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("patient-1", "active"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "status" FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("active"))
	mock.ExpectExec(`UPDATE "patients" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	recorder := putJSON(t, router, "/api/patients/patient-1/status", gin.H{"status": "Paused"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	response := decodeResponse(t, recorder)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "paused", data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePatientStatusRejectsCompletedValue(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	recorder := putJSON(t, router, "/api/patients/patient-1/status", gin.H{"status": "completed"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "Invalid status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePatientStatusLockedWhenCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("patient-1", "completed"))

	recorder := putJSON(t, router, "/api/patients/patient-1/status", gin.H{"status": "active"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "already completed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePatientStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	router := newPatientRouter(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	recorder := putJSON(t, router, "/api/patients/missing/status", gin.H{"status": "active"})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
