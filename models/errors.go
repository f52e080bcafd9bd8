package models

import "errors"

// Common errors. The messages go out on the wire as-is, so they keep the
// exact text the clients display.
var (
	ErrGameNotFound   = errors.New("Game not found")
	ErrUsernameExists = errors.New("Username already exists!! Try a different one.")
)
