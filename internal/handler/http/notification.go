package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/notification"
	"github.com/silangan-hr/payroll-engine-go/internal/handler/http/response"
)

type NotificationHandler interface {
	ListForEmployee(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.NotificationService
}

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

func (h *notificationHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.notificationService.ListForEmployee(r.Context(), organizationID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
