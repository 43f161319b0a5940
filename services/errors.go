package services

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAdminCode   = errors.New("invalid admin code")
	ErrRewardAlreadyGiven = errors.New("reward already given for this item")
)
