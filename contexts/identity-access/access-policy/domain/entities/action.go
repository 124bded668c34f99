package entities

// Action names one guarded operation. The string form appears in logs.
type Action string

const (
	ActionPropertyCreate    Action = "property.create"
	ActionPropertyEdit      Action = "property.edit"
	ActionPropertyFullEdit  Action = "property.full_edit"
	ActionPropertySetStatus Action = "property.set_status"
	ActionPropertyDelete    Action = "property.delete"
	ActionPropertyViewAll   Action = "property.view_all"

	ActionUserList        Action = "user.list"
	ActionUserEdit        Action = "user.edit"
	ActionUserDelete      Action = "user.delete"
	ActionUserProfileEdit Action = "user.profile_edit"

	ActionContactList      Action = "contact.list"
	ActionNotificationRead Action = "notification.read"
)

// Decision is the auditable outcome of one policy evaluation.
type Decision struct {
	Action  Action
	Allowed bool
	Reason  string
}
