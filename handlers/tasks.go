package handlers

import (
	"net/http"
	"time"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/config"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/middleware"
	"github.com/Nuga25/interneefy-backend/models"
	"github.com/Nuga25/interneefy-backend/rules"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	config *config.Config
}

func NewTaskHandler(cfg *config.Config) *TaskHandler {
	return &TaskHandler{config: cfg}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Category    *string    `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	InternID    uint       `json:"internId"`
}

// updateTaskRequest uses pointers so absent fields are distinguishable from
// zero values; the names of the present fields feed the authorization
// engine's field filtering.
type updateTaskRequest struct {
	Status      *string    `json:"status"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority"`
	Category    *string    `json:"category"`
	InternID    *uint      `json:"internId"`
}

func (req *updateTaskRequest) requestedFields() []string {
	var fields []string
	if req.Status != nil {
		fields = append(fields, "status")
	}
	if req.Title != nil {
		fields = append(fields, "title")
	}
	if req.Description != nil {
		fields = append(fields, "description")
	}
	if req.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	if req.Priority != nil {
		fields = append(fields, "priority")
	}
	if req.Category != nil {
		fields = append(fields, "category")
	}
	if req.InternID != nil {
		fields = append(fields, "internId")
	}
	return fields
}

// Create lets a supervisor assign a task to one of the company's interns.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionCreate,
		Resource: authz.ResourceTask,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	if req.Title == "" || req.Priority == "" || req.InternID == 0 {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Title, internId, and priority are required.")
		return
	}

	if _, err := rules.CheckInternAssignment(database.GetDB(), actor, req.InternID); err != nil {
		respondAppError(w, err)
		return
	}

	task := models.Task{
		CompanyID:    actor.CompanyID,
		SupervisorID: actor.UserID,
		InternID:     req.InternID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Category:     req.Category,
		DueDate:      req.DueDate,
		Status:       models.TaskStatusPending,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to create task.")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// ListMine is the intern view: tasks assigned to the actor, newest first.
func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionList,
		Resource: authz.ResourceTask,
		Scope:    authz.ScopeAssigned,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var tasks []models.Task
	err := database.GetDB().Preload("Supervisor").
		Where("intern_id = ?", actor.UserID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to retrieve tasks.")
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// ListSupervised is the supervisor view: tasks the actor created.
func (h *TaskHandler) ListSupervised(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	decision := authz.Decide(actor, authz.Intent{
		Action:   authz.ActionList,
		Resource: authz.ResourceTask,
		Scope:    authz.ScopeSupervised,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	var tasks []models.Task
	err := database.GetDB().Preload("Intern").
		Where("supervisor_id = ? AND company_id = ?", actor.UserID, actor.CompanyID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to retrieve supervised tasks.")
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	taskID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid task id.")
		return
	}

	var task models.Task
	if err := database.GetDB().Preload("Supervisor").Preload("Intern").First(&task, taskID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "Task not found.")
		return
	}

	decision := authz.Decide(actor, authz.Intent{
		Action:       authz.ActionRead,
		Resource:     authz.ResourceTask,
		CompanyID:    task.CompanyID,
		SupervisorID: task.SupervisorID,
		InternID:     task.InternID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Update applies a partial update. The engine computes which of the
// requested fields this actor may change; the rest are dropped silently.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	taskID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid task id.")
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, taskID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "Task not found.")
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	decision := authz.Decide(actor, authz.Intent{
		Action:       authz.ActionUpdate,
		Resource:     authz.ResourceTask,
		CompanyID:    task.CompanyID,
		SupervisorID: task.SupervisorID,
		InternID:     task.InternID,
		Fields:       req.requestedFields(),
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	for _, field := range decision.Fields {
		switch field {
		case "status":
			task.Status = *req.Status
		case "title":
			task.Title = *req.Title
		case "description":
			task.Description = *req.Description
		case "dueDate":
			task.DueDate = req.DueDate
		case "priority":
			task.Priority = *req.Priority
		case "category":
			task.Category = req.Category
		case "internId":
			if _, err := rules.CheckInternAssignment(database.GetDB(), actor, *req.InternID); err != nil {
				respondAppError(w, err)
				return
			}
			task.InternID = *req.InternID
		}
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to update task.")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete removes a task. Only the creating supervisor may do this; admins
// are deliberately not granted delete.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	actor := actorFromClaims(claims)

	taskID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errs.KindValidation, "Invalid task id.")
		return
	}

	var task models.Task
	if err := database.GetDB().First(&task, taskID).Error; err != nil {
		respondError(w, http.StatusNotFound, errs.KindNotFound, "Task not found.")
		return
	}

	decision := authz.Decide(actor, authz.Intent{
		Action:       authz.ActionDelete,
		Resource:     authz.ResourceTask,
		CompanyID:    task.CompanyID,
		SupervisorID: task.SupervisorID,
		InternID:     task.InternID,
	})
	if !decision.Allowed {
		respondAppError(w, decision.Err())
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Failed to delete task.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
