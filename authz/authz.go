// Package authz decides, per request, whether an authenticated actor may
// perform an operation on a resource. Decisions are role × relationship: the
// actor's role alone is never sufficient, the actor's relation to the target
// (same company, assignee, creator, self) always participates.
package authz

import (
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/models"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceUser       Resource = "user"
	ResourceTask       Resource = "task"
	ResourceEvaluation Resource = "evaluation"
	ResourceCompany    Resource = "company"
)

// Scope distinguishes list variants of the same resource.
type Scope string

const (
	// ScopeAssigned lists tasks or evaluations where the actor is the intern.
	ScopeAssigned Scope = "assigned"
	// ScopeSupervised lists tasks or evaluations where the actor is the supervisor.
	ScopeSupervised Scope = "supervised"
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	UserID    uint
	CompanyID uint
	Role      models.Role
}

// Intent is the normalized description of the attempted operation. CompanyID
// is the target resource's owning company and must be set for every read,
// update and delete of an existing resource; creates and lists are implicitly
// scoped to the actor's own company and leave it zero.
type Intent struct {
	Action       Action
	Resource     Resource
	CompanyID    uint
	TargetUserID uint     // user reads and deletes
	SupervisorID uint     // owning supervisor of a task or evaluation
	InternID     uint     // assigned intern of a task or evaluation
	Scope        Scope    // list variant
	Fields       []string // requested field changes on update
}

// Decision is the engine's verdict. On Allow for updates, Fields holds the
// requested fields the actor may actually change.
type Decision struct {
	Allowed bool
	Fields  []string
	Kind    errs.Kind
	Reason  errs.Reason
	Message string
}

// Err converts a denial into the taxonomy error. Nil for allowed decisions.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Kind == errs.KindForbidden {
		return errs.Forbidden(d.Reason, d.Message)
	}
	return errs.New(d.Kind, d.Message)
}

func allow(fields ...string) Decision {
	return Decision{Allowed: true, Fields: fields}
}

func deny(reason errs.Reason, message string) Decision {
	return Decision{Kind: errs.KindForbidden, Reason: reason, Message: message}
}
