package handlers

import (
	"net/http"
	"strings"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"
)

type CompanyHandler struct {
	config *config.Config
}

func NewCompanyHandler(cfg *config.Config) *CompanyHandler {
	return &CompanyHandler{config: cfg}
}

type updateCompanyRequest struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logoUrl"`
}

// Get returns the actor's own company profile. Any authenticated member may
// read it.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:    authz.ActionRead,
		Resource:  authz.ResourceCompany,
		CompanyID: actor.CompanyID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var company models.Company
	if err := database.GetDB().First(&company, actor.CompanyID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "Company not found.")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// Update changes the company display name and logo. Admin only.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:    authz.ActionUpdate,
		Resource:  authz.ResourceCompany,
		CompanyID: actor.CompanyID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var req updateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Company name cannot be empty.")
		return
	}

	var company models.Company
	if err := database.GetDB().First(&company, actor.CompanyID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "Company not found.")
		return
	}

	company.Name = req.Name
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}

	if err := database.GetDB().Save(&company).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to update company.")
		return
	}

	respondJSON(w, http.StatusOK, company)
}
