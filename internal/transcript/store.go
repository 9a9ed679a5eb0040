// Package transcript persists completed triage sessions for research and
// historical review. Saving is a best-effort side channel: a store failure
// must never prevent a patient from seeing their results.
package transcript

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/triage-advisor-server/internal/domain"
)

// columns is the shared column order for both backends. Scan and insert
// helpers depend on it.
const columns = `id, session_id, timestamp, patient_name, age, sex, zip_code,
	answering_for, symptom_text, pmh_text, selected_symptoms, pmh,
	interview_history, prediction_level, prediction_label, risk_pcts,
	specialist_info, reassurance, escalation, triage_summary, red_flag,
	risk_factors`

type scanner interface {
	Scan(dest ...interface{}) error
}

// insertArgs marshals a transcript into the insert parameter list
// (everything after the generated id column).
func insertArgs(t *domain.Transcript) ([]interface{}, error) {
	selectedSymptoms, err := json.Marshal(t.SelectedSymptoms)
	if err != nil {
		return nil, fmt.Errorf("encoding selected symptoms: %w", err)
	}
	pmh, err := json.Marshal(t.PMH)
	if err != nil {
		return nil, fmt.Errorf("encoding pmh: %w", err)
	}
	history, err := json.Marshal(t.InterviewHistory)
	if err != nil {
		return nil, fmt.Errorf("encoding interview history: %w", err)
	}
	riskPcts, err := json.Marshal(t.RiskPcts)
	if err != nil {
		return nil, fmt.Errorf("encoding risk percentages: %w", err)
	}
	escalation, err := json.Marshal(t.Escalation)
	if err != nil {
		return nil, fmt.Errorf("encoding escalation: %w", err)
	}
	triageSummary, err := json.Marshal(t.TriageSummary)
	if err != nil {
		return nil, fmt.Errorf("encoding triage summary: %w", err)
	}
	riskFactors, err := json.Marshal(t.RiskFactors)
	if err != nil {
		return nil, fmt.Errorf("encoding risk factors: %w", err)
	}

	var specialist interface{}
	if t.Specialist != nil {
		data, err := json.Marshal(t.Specialist)
		if err != nil {
			return nil, fmt.Errorf("encoding specialist: %w", err)
		}
		specialist = string(data)
	}
	var redFlag interface{}
	if t.RedFlag != nil {
		data, err := json.Marshal(t.RedFlag)
		if err != nil {
			return nil, fmt.Errorf("encoding red flag: %w", err)
		}
		redFlag = string(data)
	}

	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return []interface{}{
		t.SessionID,
		ts.UTC().Format(time.RFC3339Nano),
		t.PatientName,
		t.Age,
		string(t.Sex),
		t.ZipCode,
		string(t.AnsweringFor),
		t.SymptomText,
		t.PMHText,
		string(selectedSymptoms),
		string(pmh),
		string(history),
		int(t.PredictionLevel),
		t.PredictionLabel,
		string(riskPcts),
		specialist,
		t.Reassurance,
		string(escalation),
		string(triageSummary),
		redFlag,
		string(riskFactors),
	}, nil
}

// scanTranscript reads one row in the shared column order.
func scanTranscript(s scanner) (*domain.Transcript, error) {
	var (
		t                domain.Transcript
		timestamp        string
		sex              string
		answeringFor     string
		selectedSymptoms string
		pmh              string
		history          string
		riskPcts         string
		specialist       sql.NullString
		escalation       string
		triageSummary    string
		redFlag          sql.NullString
		riskFactors      string
	)
	err := s.Scan(
		&t.ID, &t.SessionID, &timestamp, &t.PatientName, &t.Age, &sex,
		&t.ZipCode, &answeringFor, &t.SymptomText, &t.PMHText,
		&selectedSymptoms, &pmh, &history, &t.PredictionLevel,
		&t.PredictionLabel, &riskPcts, &specialist, &t.Reassurance,
		&escalation, &triageSummary, &redFlag, &riskFactors,
	)
	if err != nil {
		return nil, err
	}

	t.Sex = domain.Sex(sex)
	t.AnsweringFor = domain.AnsweringFor(answeringFor)
	if ts, err := time.Parse(time.RFC3339Nano, timestamp); err == nil {
		t.Timestamp = ts
	}
	if err := json.Unmarshal([]byte(selectedSymptoms), &t.SelectedSymptoms); err != nil {
		return nil, fmt.Errorf("decoding selected symptoms: %w", err)
	}
	if err := json.Unmarshal([]byte(pmh), &t.PMH); err != nil {
		return nil, fmt.Errorf("decoding pmh: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &t.InterviewHistory); err != nil {
		return nil, fmt.Errorf("decoding interview history: %w", err)
	}
	if err := json.Unmarshal([]byte(riskPcts), &t.RiskPcts); err != nil {
		return nil, fmt.Errorf("decoding risk percentages: %w", err)
	}
	if err := json.Unmarshal([]byte(escalation), &t.Escalation); err != nil {
		return nil, fmt.Errorf("decoding escalation: %w", err)
	}
	if err := json.Unmarshal([]byte(triageSummary), &t.TriageSummary); err != nil {
		return nil, fmt.Errorf("decoding triage summary: %w", err)
	}
	if err := json.Unmarshal([]byte(riskFactors), &t.RiskFactors); err != nil {
		return nil, fmt.Errorf("decoding risk factors: %w", err)
	}
	if specialist.Valid && specialist.String != "" {
		var sp domain.Specialist
		if err := json.Unmarshal([]byte(specialist.String), &sp); err != nil {
			return nil, fmt.Errorf("decoding specialist: %w", err)
		}
		t.Specialist = &sp
	}
	if redFlag.Valid && redFlag.String != "" {
		var rf domain.RedFlag
		if err := json.Unmarshal([]byte(redFlag.String), &rf); err != nil {
			return nil, fmt.Errorf("decoding red flag: %w", err)
		}
		t.RedFlag = &rf
	}
	return &t, nil
}

// writeJSON streams the transcripts as an indented JSON array.
func writeJSON(w io.Writer, transcripts []*domain.Transcript) error {
	if transcripts == nil {
		transcripts = []*domain.Transcript{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(transcripts)
}

var csvHeader = []string{
	"id", "session_id", "timestamp", "patient_name", "age", "sex",
	"zip_code", "answering_for", "symptom_text", "pmh_text",
	"selected_symptoms", "pmh", "interview_history", "prediction_level",
	"prediction_label", "risk_pcts", "specialist_info", "reassurance",
	"escalation", "triage_summary", "red_flag", "risk_factors",
}

// writeCSV streams the transcripts as one flat CSV; structured columns are
// embedded as JSON strings, matching the JSON export's field shapes.
func writeCSV(w io.Writer, transcripts []*domain.Transcript) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range transcripts {
		args, err := insertArgs(t)
		if err != nil {
			return err
		}
		row := make([]string, 0, len(args)+1)
		row = append(row, strconv.FormatInt(t.ID, 10))
		for _, a := range args {
			switch v := a.(type) {
			case nil:
				row = append(row, "")
			case string:
				row = append(row, v)
			case int:
				row = append(row, strconv.Itoa(v))
			default:
				row = append(row, fmt.Sprint(v))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
