package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
}

// MockScheduler stands in for the scheduling service.
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Propose(req scheduling.ProposeRequest) (*models.Appointment, error) {
	args := m.Called(req)
	if appointment, ok := args.Get(0).(*models.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScheduler) Complete(appointmentID string) error {
	return m.Called(appointmentID).Error(0)
}

func (m *MockScheduler) Delete(appointmentID string) error {
	return m.Called(appointmentID).Error(0)
}

func newAppointmentRouter(scheduler handlers.Scheduler) *gin.Engine {
	handler := handlers.NewAppointmentHandler(nil, scheduler)
	router := gin.New()
	router.POST("/api/appointments", handler.CreateAppointment)
	router.PATCH("/api/appointments/:id/complete", handler.CompleteAppointment)
	router.DELETE("/api/appointments/:id", handler.DeleteAppointment)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) utils.ResponseData {
	t.Helper()
	var response utils.ResponseData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestCreateAppointmentSuccess(t *testing.T) {
	scheduler := new(MockScheduler)
	start := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	scheduler.On("Propose", scheduling.ProposeRequest{
		PatientID:       "patient-1",
		TherapistID:     "therapist-1",
		StartTime:       start,
		DurationMinutes: 60,
	}).Return(&models.Appointment{
		PatientID:       "patient-1",
		TherapistID:     "therapist-1",
		StartTime:       start,
		DurationMinutes: 60,
		Status:          models.AppointmentPending,
	}, nil)

	router := newAppointmentRouter(scheduler)
	recorder := postJSON(t, router, "/api/appointments", gin.H{
		"patientId":       "patient-1",
		"therapistId":     "therapist-1",
		"startTime":       "2025-01-06T10:00:00Z",
		"durationMinutes": 60,
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	scheduler.AssertExpectations(t)
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	scheduler := new(MockScheduler)
	router := newAppointmentRouter(scheduler)

	recorder := postJSON(t, router, "/api/appointments", gin.H{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "PatientID is required")
	assert.Contains(t, response.Error, "TherapistID is required")
	assert.Contains(t, response.Error, "StartTime is required")
	scheduler.AssertNotCalled(t, "Propose")
}

func TestCreateAppointmentOverlapConflict(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Propose", mock.Anything).Return(nil, scheduling.ErrOverlap)

	router := newAppointmentRouter(scheduler)
	recorder := postJSON(t, router, "/api/appointments", gin.H{
		"patientId":   "patient-1",
		"therapistId": "therapist-1",
		"startTime":   "2025-01-06T10:30:00Z",
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "1 hour separation")
}

func TestCreateAppointmentQuotaExceeded(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Propose", mock.Anything).Return(nil, scheduling.ErrQuotaExceeded)

	router := newAppointmentRouter(scheduler)
	recorder := postJSON(t, router, "/api/appointments", gin.H{
		"patientId":   "patient-1",
		"therapistId": "therapist-1",
		"startTime":   "2025-01-08T10:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	assert.Contains(t, response.Error, "weekly limit")
}

func TestCreateAppointmentUnknownTherapist(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Propose", mock.Anything).Return(nil, scheduling.ErrTherapistNotFound)

	router := newAppointmentRouter(scheduler)
	recorder := postJSON(t, router, "/api/appointments", gin.H{
		"patientId":   "patient-1",
		"therapistId": "missing",
		"startTime":   "2025-01-08T10:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCompleteAppointment(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Complete", "appt-1").Return(nil)

	router := newAppointmentRouter(scheduler)
	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/appt-1/complete", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	response := decodeResponse(t, recorder)
	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["success"])
	scheduler.AssertExpectations(t)
}

func TestCompleteAppointmentAlreadyCompleted(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Complete", "appt-1").Return(scheduling.ErrNotPending)

	router := newAppointmentRouter(scheduler)
	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/appt-1/complete", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteAppointment(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Delete", "appt-1").Return(nil)

	router := newAppointmentRouter(scheduler)
	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/appt-1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	scheduler.AssertExpectations(t)
}

func TestDeleteCompletedAppointmentRejected(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Delete", "appt-1").Return(scheduling.ErrCompletedImmutable)

	router := newAppointmentRouter(scheduler)
	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/appt-1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	scheduler := new(MockScheduler)
	scheduler.On("Delete", "missing").Return(scheduling.ErrAppointmentNotFound)

	router := newAppointmentRouter(scheduler)
	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/missing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
