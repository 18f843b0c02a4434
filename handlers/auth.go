package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type registerCompanyRequest struct {
	CompanyName string `json:"companyName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RegisterCompany creates a company together with its founding admin. It is
// one of the two unauthenticated operations.
func (h *AuthHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.CompanyName == "" || req.FullName == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Company name, full name, email and password are required.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Registration failed.")
		return
	}

	company := models.Company{Name: req.CompanyName}
	admin := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		admin.CompanyID = company.ID
		return tx.Create(&admin).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondError(w, http.StatusConflict, errs.KindDuplicateEmail, "A user with this email already exists.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Registration failed.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Company and Admin created!",
		"company": company,
		"admin":   userSummary(&admin),
	})
}

// Login exchanges credentials for a bearer token. Unknown email and wrong
// password are reported distinctly, matching the reference behavior.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	var user models.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, errs.KindUnauthenticated, "Invalid password.")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Login failed.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful!",
		"token":   token,
		"role":    user.Role,
	})
}

// ChangePassword lets the authenticated user rotate their own password, the
// expected follow-up to the mailed temporary credentials.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if len(req.NewPassword) < 8 {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "New password must be at least 8 characters.")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(w, http.StatusUnauthorized, errs.KindUnauthenticated, "Current password is incorrect.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to update password.")
		return
	}

	if err := database.GetDB().Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to update password.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated."})
}
