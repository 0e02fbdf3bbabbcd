package notification

import "context"

type NotificationService interface {
	ListForEmployee(ctx context.Context, organizationID, employeeID string) ([]NotificationResponse, error)
}
