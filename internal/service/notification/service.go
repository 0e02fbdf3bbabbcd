package notification

import (
	"context"
	"fmt"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/notification"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
)

// Notifier dispatches payslip events to employees. Implementations may fail;
// callers log and swallow those failures, they never fail a payroll operation.
type Notifier interface {
	PayslipFinalized(ctx context.Context, payslip payroll.Payslip) error
}

type notifierImpl struct {
	notificationRepo notification.NotificationRepository
}

func NewNotifier(notificationRepo notification.NotificationRepository) Notifier {
	return &notifierImpl{notificationRepo: notificationRepo}
}

func (n *notifierImpl) PayslipFinalized(ctx context.Context, payslip payroll.Payslip) error {
	_, err := n.notificationRepo.Create(ctx, notification.Notification{
		OrganizationID: payslip.OrganizationID,
		EmployeeID:     payslip.EmployeeID,
		Title:          "Payslip ready",
		Body:           fmt.Sprintf("Your payslip for %s has been finalized.", payslip.PeriodLabel),
	})
	if err != nil {
		return fmt.Errorf("failed to create payslip notification: %w", err)
	}
	return nil
}

type NotificationServiceImpl struct {
	notificationRepo notification.NotificationRepository
}

func NewNotificationService(notificationRepo notification.NotificationRepository) notification.NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListForEmployee(ctx context.Context, organizationID, employeeID string) ([]notification.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListForEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}
