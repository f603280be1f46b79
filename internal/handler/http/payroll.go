package http

import (
	"net/http"
	"strconv"

	"github.com/staffdeck/staffdeck-backend-go/internal/domain/payroll"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Overview implements PayrollHandler.
func (h *payrollHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	var req payroll.OverviewRequest
	req.Month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	req.Year, _ = strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.payrollService.Overview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
