package compensation

import "context"

type CompensationService interface {
	GetProfile(ctx context.Context, organizationID, employeeID string) (ProfileResponse, error)
	UpsertProfile(ctx context.Context, organizationID string, req UpsertProfileRequest) (ProfileResponse, error)
}
