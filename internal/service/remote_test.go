package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-advisor-server/internal/domain"
)

func newRemoteModelFor(url string) *RemoteModel {
	return NewRemoteModel(domain.ModelConfig{Endpoint: url, Timeout: 2 * time.Second}, testLogger())
}

func TestRemoteModelPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var state domain.PatientState
		require.NoError(t, json.NewDecoder(r.Body).Decode(&state))
		assert.Equal(t, []string{"chest_pain"}, state.SelectedSymptoms)

		json.NewEncoder(w).Encode(domain.Prediction{
			Level: domain.LevelUrgentCare,
			Label: domain.LevelUrgentCare.String(),
			Probabilities: map[domain.UrgencyLevel]float64{
				domain.LevelUrgentCare: 0.7,
				domain.LevelEmergency:  0.2,
			},
		})
	}))
	defer srv.Close()

	state := domain.NewPatientState()
	state.SelectedSymptoms = []string{"chest_pain"}

	pred, err := newRemoteModelFor(srv.URL).Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelUrgentCare, pred.Level)
	assert.InDelta(t, 0.7, pred.P(domain.LevelUrgentCare), 1e-9)
}

func TestRemoteModelNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newRemoteModelFor(srv.URL).Predict(context.Background(), domain.NewPatientState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestRemoteModelRejectsInvalidShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"level": 9, "label": "bogus"})
	}))
	defer srv.Close()

	_, err := newRemoteModelFor(srv.URL).Predict(context.Background(), domain.NewPatientState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prediction shape invalid")
}

func TestRemoteModelConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newRemoteModelFor(srv.URL).Predict(context.Background(), domain.NewPatientState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling prediction service")
}
