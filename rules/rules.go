// Package rules holds the business preconditions that run after
// authorization grants an operation but before anything is persisted. Unlike
// the authorization engine these checks need storage lookups.
package rules

import (
	"errors"
	"time"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/models"

	"gorm.io/gorm"
)

// CheckEvaluationSubmission validates that the actor may evaluate the given
// intern right now. Check order matters for error reporting: existence, then
// ownership, then end-date presence, then end-date elapsed, then uniqueness.
func CheckEvaluationSubmission(db *gorm.DB, actor authz.Actor, internID uint, now time.Time) (*models.User, error) {
	var intern models.User
	err := db.Where("id = ? AND company_id = ?", internID, actor.CompanyID).First(&intern).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.KindNotFound, "Intern not found.")
	}
	if err != nil {
		return nil, errs.New(errs.KindPersistence, "Failed to look up intern.")
	}

	if intern.SupervisorID == nil || *intern.SupervisorID != actor.UserID {
		return nil, errs.New(errs.KindNotYourIntern, "You can only evaluate interns assigned to you.")
	}

	if intern.EndDate == nil {
		return nil, errs.Newf(errs.KindTooEarly, "%s has no internship end date set.", intern.FullName)
	}
	if !intern.EndDate.Before(now) {
		return nil, errs.Newf(errs.KindTooEarly, "Cannot evaluate %s before their internship ends on %s.",
			intern.FullName, intern.EndDate.Format("January 2, 2006"))
	}

	var count int64
	if err := db.Model(&models.Evaluation{}).
		Where("supervisor_id = ? AND intern_id = ?", actor.UserID, internID).
		Count(&count).Error; err != nil {
		return nil, errs.New(errs.KindPersistence, "Failed to check existing evaluations.")
	}
	if count > 0 {
		return nil, errs.Newf(errs.KindConflict, "You have already evaluated %s.", intern.FullName)
	}

	return &intern, nil
}

// CheckInternAssignment resolves internID to an INTERN in the actor's
// company. Used when creating or reassigning tasks.
func CheckInternAssignment(db *gorm.DB, actor authz.Actor, internID uint) (*models.User, error) {
	var intern models.User
	err := db.Where("id = ? AND company_id = ?", internID, actor.CompanyID).First(&intern).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.KindValidation, "Intern not found in your company.")
	}
	if err != nil {
		return nil, errs.New(errs.KindPersistence, "Failed to look up intern.")
	}
	if intern.Role != models.RoleIntern {
		return nil, errs.New(errs.KindValidation, "Assigned user is not an intern.")
	}
	return &intern, nil
}

// CheckSupervisorReference verifies that a supervisorId attached to a new
// intern resolves to a SUPERVISOR in the same company. Cross-company
// references are rejected rather than silently dropped.
func CheckSupervisorReference(db *gorm.DB, companyID, supervisorID uint) error {
	var supervisor models.User
	err := db.Where("id = ? AND company_id = ?", supervisorID, companyID).First(&supervisor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.KindValidation, "Supervisor not found in your company.")
	}
	if err != nil {
		return errs.New(errs.KindPersistence, "Failed to look up supervisor.")
	}
	if supervisor.Role != models.RoleSupervisor {
		return errs.New(errs.KindValidation, "Referenced user is not a supervisor.")
	}
	return nil
}

// TranslateDeleteError maps a store refusal to cascade (the target still has
// tasks or evaluations) to Conflict. Anything else is a generic persistence
// failure.
func TranslateDeleteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.New(errs.KindConflict,
			"Cannot delete user. Please reassign or delete their associated tasks and evaluations first.")
	}
	return errs.New(errs.KindPersistence, "Failed to delete user.")
}
