package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
)

const transcriptsPerPage = 25

type answerRequest struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Answer     []string `json:"answer" binding:"required"`
}

type questionResponse struct {
	Question  *domain.Question `json:"question,omitempty"`
	Phase     domain.Phase     `json:"phase"`
	Complete  bool             `json:"complete"`
	RedFlag   *domain.RedFlag  `json:"red_flag,omitempty"`
	Answered  int              `json:"answered"`
	Estimated int              `json:"estimated_total"`
}

// handleCreateSession starts a new interview and returns the first question.
func (s *Server) handleCreateSession(c *gin.Context) {
	id := uuid.New().String()
	state := domain.NewPatientState()

	if err := s.sessions.Create(c.Request.Context(), id, state); err != nil {
		s.logger.WithError(err).Error("Creating session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	q, err := s.engine.NextQuestion(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build first question"})
		return
	}
	if err := s.sessions.Update(c.Request.Context(), id, state); err != nil {
		s.logger.WithError(err).Warn("Persisting session after first question")
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id":      id,
		"question":        q,
		"phase":           state.Phase,
		"estimated_total": s.engine.EstimateTotal(state),
	})
}

// handleNextQuestion returns the next pending question for the session.
func (s *Server) handleNextQuestion(c *gin.Context) {
	state, ok := s.loadSession(c)
	if !ok {
		return
	}

	q, err := s.engine.NextQuestion(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build question"})
		return
	}
	if err := s.sessions.Update(c.Request.Context(), c.Param("id"), state); err != nil {
		s.logger.WithError(err).Warn("Persisting session after question selection")
	}

	c.JSON(http.StatusOK, questionResponse{
		Question:  q,
		Phase:     state.Phase,
		Complete:  state.Phase.IsTerminal(),
		RedFlag:   state.RedFlag,
		Answered:  len(state.InterviewHistory),
		Estimated: s.engine.EstimateTotal(state),
	})
}

// handleAnswer applies one answer. When the answer trips a red flag the
// response says so and the interview is over; otherwise the next question
// is included.
func (s *Server) handleAnswer(c *gin.Context) {
	state, ok := s.loadSession(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question_id and answer are required"})
		return
	}

	flag, err := s.engine.ApplyAnswer(state, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInterviewTerminal):
			c.JSON(http.StatusConflict, gin.H{"error": "interview already finished"})
		default:
			s.logger.WithError(err).Error("Applying answer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not apply answer"})
		}
		return
	}

	var next *domain.Question
	if flag == nil {
		next, err = s.engine.NextQuestion(state)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build question"})
			return
		}
	}

	if err := s.sessions.Update(c.Request.Context(), c.Param("id"), state); err != nil {
		s.logger.WithError(err).Error("Persisting session after answer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save session"})
		return
	}

	c.JSON(http.StatusOK, questionResponse{
		Question:  next,
		Phase:     state.Phase,
		Complete:  state.Phase.IsTerminal(),
		RedFlag:   flag,
		Answered:  len(state.InterviewHistory),
		Estimated: s.engine.EstimateTotal(state),
	})
}

// handleResults runs prediction and evidence synthesis for a finished
// interview and saves the transcript best-effort.
func (s *Server) handleResults(c *gin.Context) {
	state, ok := s.loadSession(c)
	if !ok {
		return
	}
	if !state.Phase.IsTerminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "interview is not finished"})
		return
	}

	pred, err := s.model.Predict(c.Request.Context(), state)
	if err != nil {
		s.logger.WithError(err).Error("Prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute recommendation"})
		return
	}
	evidence := s.synthesizer.Synthesize(state, pred)

	// Transcript persistence must never block results. The store ignores
	// duplicate session ids, so a page refresh cannot double-save.
	t := buildTranscript(c.Param("id"), state, pred, evidence)
	if err := s.transcripts.Save(c.Request.Context(), t); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": t.SessionID,
		}).WithError(err).Warn("Saving transcript failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": pred,
		"evidence":   evidence,
	})
}

// handleDeleteSession discards a session so the client can start over.
func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.logger.WithError(err).Warn("Deleting session")
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) loadSession(c *gin.Context) (*domain.PatientState, bool) {
	state, err := s.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		} else {
			s.logger.WithError(err).Error("Loading session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		}
		return nil, false
	}
	return state, true
}

func buildTranscript(sessionID string, state *domain.PatientState, pred *domain.Prediction, ev *domain.Evidence) *domain.Transcript {
	return &domain.Transcript{
		SessionID:        sessionID,
		PatientName:      state.Name,
		Age:              state.Age,
		Sex:              state.Sex,
		ZipCode:          state.ZipCode,
		AnsweringFor:     state.AnsweringFor,
		SymptomText:      state.SymptomText,
		PMHText:          state.PMHText,
		SelectedSymptoms: state.SelectedSymptoms,
		PMH:              state.PMH,
		InterviewHistory: state.InterviewHistory,
		PredictionLevel:  pred.Level,
		PredictionLabel:  pred.Label,
		RiskPcts:         ev.RiskPcts,
		Specialist:       pred.Specialist,
		Reassurance:      ev.Reassurance,
		Escalation:       ev.Escalation,
		TriageSummary:    ev.TriageSummary,
		RedFlag:          pred.RedFlag,
		RiskFactors:      pred.RiskFactors,
	}
}

// adminAuth guards the transcript viewer with the configured password.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		password := s.configManager.GetConfig().Admin.Password
		if password == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			return
		}
		provided := c.GetHeader("X-Admin-Password")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(password)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin password"})
			return
		}
		c.Next()
	}
}

// handleListTranscripts returns one page of stored transcripts.
func (s *Server) handleListTranscripts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * transcriptsPerPage

	total, err := s.transcripts.Count(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("Counting transcripts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list transcripts"})
		return
	}
	list, err := s.transcripts.List(c.Request.Context(), transcriptsPerPage, offset)
	if err != nil {
		s.logger.WithError(err).Error("Listing transcripts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list transcripts"})
		return
	}

	totalPages := (total + transcriptsPerPage - 1) / transcriptsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	c.JSON(http.StatusOK, gin.H{
		"transcripts": list,
		"page":        page,
		"total":       total,
		"total_pages": totalPages,
	})
}

// handleGetTranscript returns one transcript by id.
func (s *Server) handleGetTranscript(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transcript id"})
		return
	}
	t, err := s.transcripts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transcript not found"})
			return
		}
		s.logger.WithError(err).Error("Reading transcript")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read transcript"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// handleExportTranscripts streams every transcript as JSON or CSV.
func (s *Server) handleExportTranscripts(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	switch format {
	case "json":
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="transcripts.json"`)
		if err := s.transcripts.ExportJSON(c.Request.Context(), c.Writer); err != nil {
			s.logger.WithError(err).Error("Exporting transcripts as JSON")
		}
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="transcripts.csv"`)
		if err := s.transcripts.ExportCSV(c.Request.Context(), c.Writer); err != nil {
			s.logger.WithError(err).Error("Exporting transcripts as CSV")
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
	}
}
