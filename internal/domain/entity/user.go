package entity

// UserState tracks where a bot user is in the grading dialog.
type UserState string

const (
	StateMainMenu       UserState = "main_menu"       // idle, showing the menu
	StateAwaitingSample UserState = "awaiting_sample" // waiting for a sample photo
	StateProcessing     UserState = "processing"      // sample is being graded
)

// User represents a Telegram bot user.
type User struct {
	ID     int64
	ChatID int64
	State  UserState
}

// NewUser creates a user in the initial state.
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState updates the user's dialog state.
func (u *User) SetState(state UserState) {
	u.State = state
}
