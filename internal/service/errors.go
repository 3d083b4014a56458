package service

import "errors"

// Sentinel errors expressing the API error taxonomy. Handlers match these with
// errors.Is and map them to status codes; anything else is an internal error
// and surfaces as an opaque 500.
var (
	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnknownRole        = errors.New("Role must be one of admin, manager, employee")
	ErrTodoNotFound       = errors.New("Todo not found")
)
