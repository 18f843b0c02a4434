package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"
	"github.com/Nuga25/interneefy-backend/rules"

	"gorm.io/gorm"
)

type EvaluationHandler struct {
	config *config.Config

	// now is swappable for timing-boundary tests.
	now func() time.Time
}

func NewEvaluationHandler(cfg *config.Config) *EvaluationHandler {
	return &EvaluationHandler{config: cfg, now: time.Now}
}

type submitEvaluationRequest struct {
	InternID           uint    `json:"internId"`
	Comments           *string `json:"comments"`
	TechnicalScore     *int    `json:"technicalScore"`
	CommunicationScore *int    `json:"communicationScore"`
	TeamworkScore      *int    `json:"teamworkScore"`
}

// Submit records a supervisor's one-time evaluation of an intern once the
// internship has ended.
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionCreate,
		Resource: authz.ResourceEvaluation,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var req submitEvaluationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if req.InternID == 0 || req.TechnicalScore == nil || req.CommunicationScore == nil || req.TeamworkScore == nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Intern ID and all scores are required.")
		return
	}

	if _, err := rules.CheckEvaluationSubmission(database.GetDB(), actor, req.InternID, h.now()); err != nil {
		respondAppError(w, err)
		return
	}

	evaluation := models.Evaluation{
		CompanyID:          actor.CompanyID,
		SupervisorID:       actor.UserID,
		InternID:           req.InternID,
		TechnicalScore:     *req.TechnicalScore,
		CommunicationScore: *req.CommunicationScore,
		TeamworkScore:      *req.TeamworkScore,
		Comments:           req.Comments,
	}

	if err := database.GetDB().Create(&evaluation).Error; err != nil {
		// The composite unique index backstops the check-then-create race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, errs.KindConflict, "This intern has already been evaluated.")
			return
		}
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to submit evaluation.")
		return
	}

	respondJSON(w, http.StatusCreated, evaluation)
}

// GetMine returns the intern's most recent evaluation.
func (h *EvaluationHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionList,
		Resource: authz.ResourceEvaluation,
		Scope:    authz.ScopeAssigned,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var evaluation models.Evaluation
	err := database.GetDB().Preload("Supervisor").
		Where("intern_id = ?", actor.UserID).
		Order("created_at desc").
		First(&evaluation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "No evaluation found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to retrieve evaluation.")
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// ListForSupervisor returns every evaluation the actor has submitted.
func (h *EvaluationHandler) ListForSupervisor(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionList,
		Resource: authz.ResourceEvaluation,
		Scope:    authz.ScopeSupervised,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var evaluations []models.Evaluation
	err := database.GetDB().Preload("Intern").
		Where("supervisor_id = ?", actor.UserID).
		Order("created_at desc").
		Find(&evaluations).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to retrieve evaluations.")
		return
	}

	respondJSON(w, http.StatusOK, evaluations)
}
