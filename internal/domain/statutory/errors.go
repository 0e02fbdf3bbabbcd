package statutory

import "errors"

var (
	ErrEmptyTable       = errors.New("statutory table has no brackets")
	ErrTableNotSorted   = errors.New("statutory table brackets are not sorted ascending")
	ErrTableGap         = errors.New("statutory table brackets leave a gap")
	ErrTableOverlap     = errors.New("statutory table brackets overlap")
	ErrTableNotAnchored = errors.New("statutory table must start at zero")
	ErrTableNotOpen     = errors.New("statutory table must end with an open-ended bracket")
	ErrUnknownScheme    = errors.New("unknown statutory scheme")
)
