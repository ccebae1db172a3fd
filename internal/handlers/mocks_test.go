package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"femtoamp/internal/models"
	"femtoamp/internal/service"

	"github.com/gin-gonic/gin"
)

const goodToken = "good-token"

type mockAuth struct {
	signUpID  int
	signUpErr error
	token     string
	tokenErr  error
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(accessToken string) (int, error) {
	if accessToken != goodToken {
		return 0, errors.New("invalid token")
	}
	return 1, nil
}

type mockControl struct {
	gains     []int
	couplings []models.CouplingMode
	speeds    []models.SpeedMode
	err       error
}

func (m *mockControl) SetGain(ctx context.Context, value int) error {
	if m.err != nil {
		return m.err
	}
	m.gains = append(m.gains, value)
	return nil
}

func (m *mockControl) SetCoupling(ctx context.Context, mode models.CouplingMode) error {
	if m.err != nil {
		return m.err
	}
	m.couplings = append(m.couplings, mode)
	return nil
}

func (m *mockControl) SetSpeed(ctx context.Context, mode models.SpeedMode) error {
	if m.err != nil {
		return m.err
	}
	m.speeds = append(m.speeds, mode)
	return nil
}

type mockMonitoring struct {
	state      models.AmplifierState
	status     models.StatusSnapshot
	climate    models.ClimateSnapshot
	stateErr   error
	statusErr  error
	climateErr error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.AmplifierState, error) {
	return m.state, m.stateErr
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (models.StatusSnapshot, error) {
	return m.status, m.statusErr
}

func (m *mockMonitoring) GetClimate(ctx context.Context) (models.ClimateSnapshot, error) {
	return m.climate, m.climateErr
}

type mockEventLog struct {
	events     []models.DeviceEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFilter = f
	return m.events, m.err
}

type mockTelemetry struct{}

func (mockTelemetry) Run(ctx context.Context, tick time.Duration) {}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if s.Authorization == nil {
		s.Authorization = &mockAuth{}
	}
	if s.Telemetry == nil {
		s.Telemetry = mockTelemetry{}
	}
	return NewHandler(s, nil).InitRoutes()
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
