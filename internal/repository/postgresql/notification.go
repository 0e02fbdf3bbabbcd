package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/notification"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	var saved notification.Notification
	err := q.QueryRow(ctx, `
		INSERT INTO notifications (id, organization_id, employee_id, title, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, employee_id, title, body, is_read, created_at
	`, n.ID, n.OrganizationID, n.EmployeeID, n.Title, n.Body).Scan(
		&saved.ID, &saved.OrganizationID, &saved.EmployeeID,
		&saved.Title, &saved.Body, &saved.IsRead, &saved.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return saved, nil
}

func (r *notificationRepository) ListForEmployee(ctx context.Context, organizationID, employeeID string) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, organization_id, employee_id, title, body, is_read, created_at
		FROM notifications
		WHERE organization_id = $1 AND employee_id = $2
		ORDER BY created_at DESC
	`, organizationID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.OrganizationID, &n.EmployeeID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
