package domain

// Action identifies an operation subject to role-based authorization.
type Action string

const (
	ActionRequestVacation  Action = "request_vacation"
	ActionApproveVacation  Action = "approve_vacation"
	ActionRejectVacation   Action = "reject_vacation"
	ActionViewOwnHistory   Action = "view_own_history"
	ActionViewPendingQueue Action = "view_pending_queue"
)

// rolePermissions is the closed permission table. Collaborators submit
// requests and see their own history; managers and admins decide on requests
// and see the pending queue. Admins do not get collaborator request rights.
var rolePermissions = map[Action]map[string]struct{}{
	ActionRequestVacation: {
		RoleCollaborator: {},
	},
	ActionApproveVacation: {
		RoleManager: {},
		RoleAdmin:   {},
	},
	ActionRejectVacation: {
		RoleManager: {},
		RoleAdmin:   {},
	},
	ActionViewOwnHistory: {
		RoleCollaborator: {},
		RoleManager:      {},
		RoleAdmin:        {},
	},
	ActionViewPendingQueue: {
		RoleManager: {},
		RoleAdmin:   {},
	},
}

// CanPerform answers whether role may perform action. Pure lookup, never
// errors; unknown roles and unknown actions are simply denied.
func CanPerform(role string, action Action) bool {
	allowed, ok := rolePermissions[action]
	if !ok {
		return false
	}
	_, ok = allowed[role]
	return ok
}
