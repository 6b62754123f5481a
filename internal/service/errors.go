package service

import "errors"

var (
	ErrValidation   = errors.New("invalid params")
	ErrNotOwner     = errors.New("no permission")
	ErrCreatorLeave = errors.New("creator cannot leave the session")
)
