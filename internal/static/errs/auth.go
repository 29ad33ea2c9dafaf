package errs

import "errors"

var (
	InvalidCredentials    = errors.New("invalid credentials")
	EmailRequired         = errors.New("email is required")
	EmailDomainNotAllowed = errors.New("email domain is not allowed")
	UserAlreadyExists     = errors.New("user already exists")
	FailedToCreateUser    = errors.New("failed to create user")
	GeneratingToken       = errors.New("failed to generate token")
	InternalError         = errors.New("internal error")
)
