package authz

import (
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/models"
)

// TaskStatusField is the only field an assigned intern may change on a task.
const TaskStatusField = "status"

// TaskUpdateFields is the full set a creating supervisor or an admin may
// change on a task.
var TaskUpdateFields = []string{"status", "title", "description", "dueDate", "priority", "category", "internId"}

// Decide evaluates the intent against the authorization table. Company
// scoping is checked before any role rule for operations on existing
// resources; the first matching rule wins.
func Decide(actor Actor, intent Intent) Decision {
	if intent.CompanyID != 0 && intent.CompanyID != actor.CompanyID {
		return deny(errs.ReasonCrossCompany, "Resource belongs to another company.")
	}

	switch intent.Resource {
	case ResourceUser:
		return decideUser(actor, intent)
	case ResourceTask:
		return decideTask(actor, intent)
	case ResourceEvaluation:
		return decideEvaluation(actor, intent)
	case ResourceCompany:
		return decideCompany(actor, intent)
	}

	return deny(errs.ReasonWrongRole, "Unknown resource.")
}

func decideUser(actor Actor, intent Intent) Decision {
	switch intent.Action {
	case ActionCreate:
		if actor.Role != models.RoleAdmin {
			return deny(errs.ReasonWrongRole, "Only Admins can add users.")
		}
		return allow()

	case ActionList:
		if actor.Role == models.RoleIntern {
			return deny(errs.ReasonWrongRole, "Interns cannot view all users.")
		}
		return allow()

	case ActionRead:
		if intent.TargetUserID == actor.UserID {
			return allow()
		}
		if actor.Role == models.RoleIntern {
			return deny(errs.ReasonWrongRole, "Interns can only view their own profile.")
		}
		return allow()

	case ActionDelete:
		if actor.Role != models.RoleAdmin {
			return deny(errs.ReasonWrongRole, "Only Admins can delete users.")
		}
		if intent.TargetUserID == actor.UserID {
			return deny(errs.ReasonSelfDelete, "Admins cannot delete their own account.")
		}
		return allow()
	}

	return deny(errs.ReasonWrongRole, "Operation not permitted on users.")
}

func decideTask(actor Actor, intent Intent) Decision {
	switch intent.Action {
	case ActionCreate:
		if actor.Role != models.RoleSupervisor {
			return deny(errs.ReasonWrongRole, "Only Supervisors can create tasks.")
		}
		return allow()

	case ActionList:
		switch intent.Scope {
		case ScopeAssigned:
			if actor.Role != models.RoleIntern {
				return deny(errs.ReasonWrongRole, "This route is for Interns to view their tasks.")
			}
			return allow()
		case ScopeSupervised:
			if actor.Role != models.RoleSupervisor {
				return deny(errs.ReasonWrongRole, "Only Supervisors can access this route.")
			}
			return allow()
		}
		return deny(errs.ReasonWrongRole, "Unknown task listing.")

	case ActionRead:
		if actor.Role == models.RoleAdmin || intent.InternID == actor.UserID || intent.SupervisorID == actor.UserID {
			return allow()
		}
		return deny(errs.ReasonNotOwner, "You do not have permission to view this task.")

	case ActionUpdate:
		return decideTaskUpdate(actor, intent)

	case ActionDelete:
		// Deliberately creator-only: admins may update tasks but not delete
		// them.
		if actor.Role != models.RoleSupervisor {
			return deny(errs.ReasonWrongRole, "Only the creating Supervisor can delete a task.")
		}
		if intent.SupervisorID != actor.UserID {
			return deny(errs.ReasonNotOwner, "Only the creating Supervisor can delete a task.")
		}
		return allow()
	}

	return deny(errs.ReasonWrongRole, "Operation not permitted on tasks.")
}

// decideTaskUpdate computes the allowed field subset. Fields the actor may
// not change are dropped silently; a request with nothing left after
// filtering is refused with NoValidFields, which is distinct from a
// permission denial.
func decideTaskUpdate(actor Actor, intent Intent) Decision {
	var permitted []string
	switch {
	case actor.Role == models.RoleIntern && intent.InternID == actor.UserID:
		permitted = []string{TaskStatusField}
	case actor.Role == models.RoleSupervisor && intent.SupervisorID == actor.UserID:
		permitted = TaskUpdateFields
	case actor.Role == models.RoleAdmin:
		permitted = TaskUpdateFields
	case actor.Role == models.RoleIntern || actor.Role == models.RoleSupervisor:
		return deny(errs.ReasonNotOwner, "Insufficient permissions or not the assigned user/supervisor.")
	default:
		return deny(errs.ReasonWrongRole, "Insufficient permissions or not the assigned user/supervisor.")
	}

	granted := filterFields(intent.Fields, permitted)
	if len(granted) == 0 {
		return Decision{Kind: errs.KindNoValidFields, Message: "No valid update fields provided."}
	}
	return allow(granted...)
}

func decideEvaluation(actor Actor, intent Intent) Decision {
	switch intent.Action {
	case ActionCreate:
		if actor.Role != models.RoleSupervisor {
			return deny(errs.ReasonWrongRole, "Only Supervisors can submit evaluations.")
		}
		return allow()

	case ActionList:
		switch intent.Scope {
		case ScopeAssigned:
			if actor.Role != models.RoleIntern {
				return deny(errs.ReasonWrongRole, "Only Interns can view their own evaluation.")
			}
			return allow()
		case ScopeSupervised:
			if actor.Role != models.RoleSupervisor {
				return deny(errs.ReasonWrongRole, "Only Supervisors can view submitted evaluations.")
			}
			return allow()
		}
		return deny(errs.ReasonWrongRole, "Unknown evaluation listing.")
	}

	// Evaluations are immutable once submitted: no update or delete exists.
	return deny(errs.ReasonWrongRole, "Evaluations cannot be modified.")
}

func decideCompany(actor Actor, intent Intent) Decision {
	switch intent.Action {
	case ActionRead:
		return allow()
	case ActionUpdate:
		if actor.Role != models.RoleAdmin {
			return deny(errs.ReasonWrongRole, "Only Admins can update the company profile.")
		}
		return allow()
	}

	return deny(errs.ReasonWrongRole, "Operation not permitted on the company.")
}

func filterFields(requested, permitted []string) []string {
	allowed := make(map[string]bool, len(permitted))
	for _, f := range permitted {
		allowed[f] = true
	}
	var granted []string
	for _, f := range requested {
		if allowed[f] {
			granted = append(granted, f)
		}
	}
	return granted
}
