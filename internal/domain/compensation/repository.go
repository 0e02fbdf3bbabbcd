package compensation

import "context"

// CompensationRepository is the compensation source consumed by the payroll
// engine.
type CompensationRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string, organizationID string) (Profile, error)
	Upsert(ctx context.Context, profile Profile) (Profile, error)
}
