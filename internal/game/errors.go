package game

import "errors"

var (
	ErrNegativeDelta  = errors.New("negative time delta")
	ErrNegativeTarget = errors.New("negative note target")
	ErrInvalidButton  = errors.New("button outside the identity space")
	ErrSessionStarted = errors.New("window already received ticks")
)
