package compensation

import "errors"

var (
	ErrProfileNotFound    = errors.New("compensation profile not found")
	ErrNegativeSalary     = errors.New("basic salary must be non-negative")
	ErrInvalidSalaryType  = errors.New("invalid salary type")
	ErrNegativeAllowance  = errors.New("allowance must be non-negative")
)
