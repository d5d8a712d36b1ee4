package errors

import "fmt"

var (
	ErrUserAlreadyExists   = fmt.Errorf("user already exists")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrInvalidPassword     = fmt.Errorf("password does not meet complexity rules")
	ErrInvalidRegistration = fmt.Errorf("invalid registration request")
	ErrTokenGeneration     = fmt.Errorf("token generation failed")
	ErrNotFound            = fmt.Errorf("record not found")
	ErrFriendshipExists    = fmt.Errorf("friendship already exists for this pair")
	ErrWorkerPanic         = fmt.Errorf("worker panic")
)
