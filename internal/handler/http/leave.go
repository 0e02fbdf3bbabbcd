package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
	"github.com/silangan-hr/payroll-engine-go/internal/handler/http/response"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Accrue(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	ConvertToCash(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	leaveType := leave.LeaveType(r.URL.Query().Get("leave_type"))
	if employeeID == "" || leaveType == "" {
		response.BadRequest(w, "Employee ID and leave_type are required", nil)
		return
	}

	result, err := h.leaveService.GetBalance(r.Context(), organizationID, employeeID, leaveType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) Accrue(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.AccrueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.Accrue(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CreatedBy = userIDFromRequest(r)

	result, err := h.leaveService.AdjustBalance(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ConvertToCash(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.ConvertLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CreatedBy = userIDFromRequest(r)

	result, err := h.leaveService.ConvertToCash(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave credits converted to cash", result)
}

func (h *leaveHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	organizationID, err := organizationIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	leaveType := leave.LeaveType(r.URL.Query().Get("leave_type"))
	if employeeID == "" || leaveType == "" {
		response.BadRequest(w, "Employee ID and leave_type are required", nil)
		return
	}

	result, err := h.leaveService.ListAdjustments(r.Context(), organizationID, employeeID, leaveType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
