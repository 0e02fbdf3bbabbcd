package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListForEmployee(ctx context.Context, organizationID, employeeID string) ([]Notification, error)
}
