package handlers

import (
	"net/http"
	"time"

	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"
)

// StatsHandler serves the admin dashboard aggregates. Routing already
// restricts these endpoints to admins.
type StatsHandler struct {
	config *config.Config

	now func() time.Time
}

func NewStatsHandler(cfg *config.Config) *StatsHandler {
	return &StatsHandler{config: cfg, now: time.Now}
}

type monthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type labelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

const enrollmentMonths = 6

// Enrollment counts interns created per calendar month over the last six
// months, oldest first, with empty months zero-filled.
func (h *StatsHandler) Enrollment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())

	now := h.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(enrollmentMonths - 1), 0)

	var interns []models.User
	err := database.GetDB().
		Where("company_id = ? AND role = ? AND created_at >= ?", claims.CompanyID, models.RoleIntern, start).
		Find(&interns).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to compute enrollment statistics.")
		return
	}

	counts := make(map[string]int, enrollmentMonths)
	for i := range interns {
		counts[interns[i].CreatedAt.UTC().Format("2006-01")]++
	}

	result := make([]monthCount, 0, enrollmentMonths)
	for i := 0; i < enrollmentMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		result = append(result, monthCount{Month: month, Count: counts[month]})
	}

	respondJSON(w, http.StatusOK, result)
}

// Domains groups interns by their domain label, falling back to the
// supervisor's name for interns without one.
func (h *StatsHandler) Domains(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())

	var interns []models.User
	err := database.GetDB().Preload("Supervisor").
		Where("company_id = ? AND role = ?", claims.CompanyID, models.RoleIntern).
		Order("created_at asc").
		Find(&interns).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to compute domain statistics.")
		return
	}

	counts := make(map[string]int)
	var order []string
	for i := range interns {
		label := "Unassigned"
		switch {
		case interns[i].Domain != nil && *interns[i].Domain != "":
			label = *interns[i].Domain
		case interns[i].Supervisor != nil:
			label = interns[i].Supervisor.FullName
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	result := make([]labelCount, 0, len(order))
	for _, label := range order {
		result = append(result, labelCount{Label: label, Count: counts[label]})
	}

	respondJSON(w, http.StatusOK, result)
}
