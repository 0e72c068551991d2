package assets

// Action is a gate-checked operation a session may request.
type Action string

const (
	// ActionViewPendingQueue lists assets awaiting a decision
	ActionViewPendingQueue Action = "view_pending_queue"
	// ActionDecideApproval approves or rejects a pending asset
	ActionDecideApproval Action = "decide_approval"
	// ActionManageAnyAsset searches assets by owner and sets statuses
	ActionManageAnyAsset Action = "manage_any_asset"
	// ActionViewOwnAssets lists the session owner's assets
	ActionViewOwnAssets Action = "view_own_assets"
)

// permissions is the static role -> action table. Anything absent is
// denied.
var permissions = map[Role]map[Action]struct{}{
	RoleApprover: {
		ActionViewPendingQueue: {},
		ActionDecideApproval:   {},
	},
	RoleITUser: {
		ActionManageAnyAsset: {},
	},
	RoleEndUser: {
		ActionViewOwnAssets: {},
	},
}

// Authorize decides whether the session may perform the action. An
// unauthenticated session is denied every action. Denial is a
// distinct outcome from an empty query result; callers surface it as
// ErrUnauthorized, never as "no rows".
func Authorize(session *Session, action Action) bool {
	if !session.IsAuthenticated() {
		return false
	}

	allowed, ok := permissions[session.Role]
	if !ok {
		return false
	}

	_, ok = allowed[action]
	return ok
}

// GetAllActions returns every gate-checked action
func GetAllActions() []Action {
	return []Action{
		ActionViewPendingQueue,
		ActionDecideApproval,
		ActionManageAnyAsset,
		ActionViewOwnAssets,
	}
}

// writableStatuses restricts which target statuses each role may
// request through the service layer. This is a call-site restriction,
// not an engine guard: the engine overwrites unconditionally.
var writableStatuses = map[Role]map[Status]struct{}{
	RoleApprover: {
		StatusApproved: {},
		StatusRejected: {},
	},
	RoleITUser: {
		StatusAvailable:       {},
		StatusInUse:           {},
		StatusPendingApproval: {},
	},
}

// CanSetStatus reports whether the session role may request the given
// target status.
func CanSetStatus(session *Session, target Status) bool {
	if !session.IsAuthenticated() {
		return false
	}

	allowed, ok := writableStatuses[session.Role]
	if !ok {
		return false
	}

	_, ok = allowed[target]
	return ok
}
