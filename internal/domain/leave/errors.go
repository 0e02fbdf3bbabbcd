package leave

import "errors"

var (
	ErrBalanceNotFound     = errors.New("leave credit balance not found")
	ErrInsufficientBalance = errors.New("insufficient leave credit balance")
	ErrReasonRequired      = errors.New("adjustment reason is required")
	ErrBalanceConflict     = errors.New("leave balance changed concurrently, re-read and retry")
	ErrNothingToConvert    = errors.New("no convertible leave days available")
)
