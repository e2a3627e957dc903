package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
)

// maxBodyBytes bounds request bodies; code plus test data rarely exceeds a few hundred KB
const maxBodyBytes = 8 << 20

// SubmissionHandler handles submission API requests
type SubmissionHandler struct {
	judgeService judge.IJudgeService
	logger       primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(judgeService judge.IJudgeService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		judgeService: judgeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/submissions", h.Submit).Methods("POST")
	router.HandleFunc("/api/submissions/batch", h.SubmitBatch).Methods("POST")
	router.HandleFunc("/api/submissions/{submissionId}", h.GetResult).Methods("GET")
	router.HandleFunc("/api/run", h.Run).Methods("POST")
}

// Submit handles single submission requests
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !h.decode(w, r, &req) {
		return
	}

	submission, err := req.toSubmission()
	if err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.judgeService.Submit(r.Context(), submission)
	if err != nil {
		h.fail(w, "Failed to judge submission", err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

// SubmitBatch handles batch submission requests
func (h *SubmissionHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Submissions) == 0 {
		handlers.ResponseError(w, "at least one submission is required", http.StatusBadRequest)
		return
	}

	submissions := make([]*domain.Submission, 0, len(req.Submissions))
	for _, item := range req.Submissions {
		submission, err := item.toSubmission()
		if err != nil {
			handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
			return
		}
		submissions = append(submissions, submission)
	}

	results, err := h.judgeService.SubmitBatch(r.Context(), submissions)
	if err != nil {
		h.fail(w, "Failed to judge batch", err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, results)
}

// GetResult handles stored verdict retrieval requests
func (h *SubmissionHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idStr := vars["submissionId"]

	submissionID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", idStr)
		handlers.ResponseError(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	result, err := h.judgeService.GetResult(r.Context(), submissionID)
	if err != nil {
		h.fail(w, "Failed to get result", err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

// Run handles ad-hoc execution requests; nothing is cached or stored
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !h.decode(w, r, &req) {
		return
	}

	submission, err := req.toSubmission()
	if err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.judgeService.Run(r.Context(), submission)
	if err != nil {
		h.fail(w, "Failed to run code", err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

func (h *SubmissionHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *SubmissionHandler) fail(w http.ResponseWriter, msg string, err error) {
	code := handlers.StatusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	handlers.ResponseError(w, err.Error(), code)
}
