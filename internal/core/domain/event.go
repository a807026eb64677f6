package domain

import "time"

// AccountAction identifies the kind of account lifecycle event.
type AccountAction string

const (
	ActionRegistered AccountAction = "registered"
	ActionLoggedIn   AccountAction = "logged_in"
	ActionLoggedOut  AccountAction = "logged_out"
)

// AccountEvent is an append-only audit record of an account action.
type AccountEvent struct {
	Username  string
	Action    AccountAction
	Timestamp time.Time
	RequestID string
}
