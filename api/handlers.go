package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mario1918/TestCaseGenie/generator"
	"github.com/mario1918/TestCaseGenie/testcase"
)

// malformedMessage is the error text for model output that is not a test case array.
const malformedMessage = "Model did not return valid JSON"

// GenerateRequest is the request body for POST /generate.
// The requirement text may arrive under "prompt" or "description".
type GenerateRequest struct {
	Prompt      string `json:"prompt,omitempty"`
	Description string `json:"description,omitempty"`
	IssueKey    string `json:"issue_key,omitempty"`
	Summary     string `json:"summary,omitempty"`
	IssueType   string `json:"issue_type,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Text returns the requirement text: prompt when non-blank, otherwise description.
func (r GenerateRequest) Text() string {
	if strings.TrimSpace(r.Prompt) != "" {
		return r.Prompt
	}
	return r.Description
}

// GenerateResponse is the success body for POST /generate.
type GenerateResponse struct {
	TestCases []testcase.TestCase `json:"testCases"`
}

// ErrorResponse is the failure body for every route.
type ErrorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()
	defer func() {
		s.metrics.duration.Observe(time.Since(start).Seconds())
	}()
	requestID := RequestIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.requests.WithLabelValues(outcomeInvalidRequest).Inc()
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	text := req.Text()
	if strings.TrimSpace(text) == "" {
		s.metrics.requests.WithLabelValues(outcomeInvalidRequest).Inc()
		writeJSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	result, err := s.gen.Generate(r.Context(), generator.Request{
		Prompt:    text,
		IssueKey:  req.IssueKey,
		Summary:   req.Summary,
		IssueType: req.IssueType,
		Status:    req.Status,
	})
	if err != nil {
		s.writeGenerateError(w, requestID, err)
		return
	}

	cases := result.TestCases
	if cases == nil {
		cases = []testcase.TestCase{}
	}

	s.metrics.requests.WithLabelValues(outcomeSuccess).Inc()
	s.metrics.generated.Add(float64(len(cases)))
	s.logger.Info("Generated test cases",
		"request_id", requestID,
		"model_request_id", result.RequestID,
		"model", result.Model,
		"issue_key", req.IssueKey,
		"count", len(cases))

	writeJSON(w, http.StatusOK, GenerateResponse{TestCases: cases})
}

func (s *Server) writeGenerateError(w http.ResponseWriter, requestID string, err error) {
	if errors.Is(err, generator.ErrEmptyPrompt) {
		s.metrics.requests.WithLabelValues(outcomeInvalidRequest).Inc()
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if m, ok := generator.AsMalformed(err); ok {
		s.metrics.requests.WithLabelValues(outcomeMalformed).Inc()
		s.logger.Error("Model did not return valid JSON",
			"request_id", requestID,
			"error", m.Err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: malformedMessage, Raw: m.Raw})
		return
	}

	message := err.Error()
	if g, ok := generator.AsGeneration(err); ok {
		message = g.Err.Error()
	}
	s.metrics.requests.WithLabelValues(outcomeGenerationError).Inc()
	s.logger.Error("Generation failed",
		"request_id", requestID,
		"error", err)
	writeJSONError(w, http.StatusInternalServerError, message)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Response is already partially written on error; nothing left to do.
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes {"error": message} with the given status code.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
