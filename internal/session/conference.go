package session

import "tianya/pkg/meettypes"

// PasswordSetter applies a room password on the live conference.
type PasswordSetter interface {
	SetPassword(password string) error
}

// Conference is the controller's view of the embedded conferencing component.
// The password capability is optional and may not be available yet when the
// join signal fires, so it is queried explicitly instead of assumed.
type Conference interface {
	PasswordCapability() (PasswordSetter, bool)
}

// Navigator is the screen-navigation collaborator. The core only ever resets
// to the home surface or opens a meeting screen with start parameters.
type Navigator interface {
	ResetToHome()
	OpenSession(params meettypes.SessionParams)
}
