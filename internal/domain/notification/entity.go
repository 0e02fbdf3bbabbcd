package notification

import "time"

type Notification struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Title          string
	Body           string
	IsRead         bool
	CreatedAt      time.Time
}
