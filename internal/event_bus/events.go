package event_bus

// UserDeleting is published synchronously before a user row is removed. A failing handler
// aborts the deletion.
const UserDeleting EventType = "user.deleting"

type UserDeletingPayload struct {
	UserId int
}
