package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
)

// RemoteModel calls an external prediction service over HTTP. It is always
// used behind a ResilientModel so an outage degrades to the built-in
// heuristic instead of failing triage.
type RemoteModel struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

// NewRemoteModel creates a client for the configured prediction endpoint.
func NewRemoteModel(cfg domain.ModelConfig, logger *logrus.Logger) *RemoteModel {
	return &RemoteModel{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// Predict posts the patient state and decodes the prediction.
func (m *RemoteModel) Predict(ctx context.Context, state *domain.PatientState) (*domain.Prediction, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding patient state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction service returned status %d", resp.StatusCode)
	}

	var pred domain.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decoding prediction: %w", err)
	}
	if err := pred.Validate(); err != nil {
		return nil, fmt.Errorf("prediction shape invalid: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"level": pred.Level,
	}).Debug("Remote prediction received")
	return &pred, nil
}
