package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/mailer"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"
	"github.com/Nuga25/interneefy-backend/rules"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	config *config.Config
	mail   *mailer.Service
}

func NewUserHandler(cfg *config.Config, mail *mailer.Service) *UserHandler {
	return &UserHandler{config: cfg, mail: mail}
}

func actorFromClaims(c *middleware.Claims) authz.Actor {
	return authz.Actor{UserID: c.UserID, CompanyID: c.CompanyID, Role: c.Role}
}

type createUserRequest struct {
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Domain       *string     `json:"domain"`
	StartDate    *time.Time  `json:"startDate"`
	EndDate      *time.Time  `json:"endDate"`
	SupervisorID *uint       `json:"supervisorId"`
}

type userSummaryResponse struct {
	ID           uint        `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	Domain       *string     `json:"domain,omitempty"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      *time.Time  `json:"end_date,omitempty"`
	SupervisorID *uint       `json:"supervisor_id,omitempty"`
}

func userSummary(u *models.User) userSummaryResponse {
	return userSummaryResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		Domain:       u.Domain,
		StartDate:    u.StartDate,
		EndDate:      u.EndDate,
		SupervisorID: u.SupervisorID,
	}
}

// Create adds a user to the admin's company. A random password is generated,
// hashed for storage, and mailed to the new user; the create succeeds even
// if that dispatch later fails.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionCreate,
		Resource: authz.ResourceUser,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if req.FullName == "" || req.Email == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Full name, email and role are required.")
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid role.")
		return
	}

	// Intern-only fields are accepted silently and nulled for other roles.
	if req.Role != models.RoleIntern {
		req.Domain = nil
		req.StartDate = nil
		req.EndDate = nil
		req.SupervisorID = nil
	}

	if req.SupervisorID != nil {
		if err := rules.CheckSupervisorReference(database.GetDB(), actor.CompanyID, *req.SupervisorID); err != nil {
			respondAppError(w, err)
			return
		}
	}

	plaintext, err := models.GenerateTempPassword()
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to create user.")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to create user.")
		return
	}

	user := models.User{
		CompanyID:    actor.CompanyID,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Domain:       req.Domain,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SupervisorID: req.SupervisorID,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, errs.KindDuplicateEmail, "A user with this email already exists.")
			return
		}
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to create user.")
		return
	}

	if h.mail != nil && user.Role != models.RoleAdmin {
		var company models.Company
		database.GetDB().First(&company, actor.CompanyID)
		if msg, err := mailer.WelcomeEmail(mailer.WelcomeData{
			FullName:    user.FullName,
			Email:       user.Email,
			Password:    plaintext,
			Role:        user.Role,
			CompanyName: company.Name,
			LoginURL:    h.config.FrontendURL,
		}); err == nil {
			h.mail.Enqueue(msg)
		}
	}

	respondJSON(w, http.StatusCreated, userSummary(&user))
}

// Get returns a single profile including the supervisor and supervisee
// relations the dashboards need.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	targetID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid user id.")
		return
	}

	var user models.User
	if err := database.GetDB().Preload("Supervisor").Preload("Supervisees").First(&user, targetID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "User not found.")
		return
	}

	decision := authz.Decide(actor, authz.Intent{
		Action:       authz.ActionRead,
		Resource:     authz.ResourceUser,
		CompanyID:    user.CompanyID,
		TargetUserID: user.ID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	respondJSON(w, http.StatusOK, userProfile(&user))
}

type relatedUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type userProfileResponse struct {
	userSummaryResponse
	Supervisor  *relatedUser  `json:"supervisor,omitempty"`
	Supervisees []relatedUser `json:"supervisees"`
}

func userProfile(u *models.User) userProfileResponse {
	profile := userProfileResponse{
		userSummaryResponse: userSummary(u),
		Supervisees:         make([]relatedUser, 0, len(u.Supervisees)),
	}
	if u.Supervisor != nil {
		profile.Supervisor = &relatedUser{ID: u.Supervisor.ID, FullName: u.Supervisor.FullName, Email: u.Supervisor.Email}
	}
	for _, s := range u.Supervisees {
		profile.Supervisees = append(profile.Supervisees, relatedUser{ID: s.ID, FullName: s.FullName, Email: s.Email})
	}
	return profile
}

// List returns every user in the actor's company.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionList,
		Resource: authz.ResourceUser,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var users []models.User
	if err := database.GetDB().Where("company_id = ?", actor.CompanyID).Order("created_at asc").Find(&users).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to retrieve users.")
		return
	}

	summaries := make([]userSummaryResponse, 0, len(users))
	for i := range users {
		summaries = append(summaries, userSummary(&users[i]))
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Delete removes a user. The store's foreign keys refuse to cascade into
// tasks and evaluations; that refusal surfaces as Conflict.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	targetID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid user id.")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, targetID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "User not found.")
		return
	}

	decision := authz.Decide(actor, authz.Intent{
		Action:       authz.ActionDelete,
		Resource:     authz.ResourceUser,
		CompanyID:    user.CompanyID,
		TargetUserID: user.ID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	if err := rules.TranslateDeleteError(database.GetDB().Delete(&user).Error); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
