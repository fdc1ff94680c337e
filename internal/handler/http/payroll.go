package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetDeductions(w http.ResponseWriter, r *http.Request)
	ComputePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetRegister(w http.ResponseWriter, r *http.Request)
	ExportRegister(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetDeductions implements PayrollHandler.
func (h *payrollHandlerImpl) GetDeductions(w http.ResponseWriter, r *http.Request) {
	req := payroll.GetDeductionsRequest{BasicSalary: r.URL.Query().Get("basic_salary")}

	result, err := h.payrollService.GetDeductions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) ComputePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ComputePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayslip implements PayrollHandler. ?format=text returns the printable report only.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	period, err := parsePeriodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GeneratePayslip(r.Context(), payroll.GetPayslipRequest{
		EmployeeID:  employeeID,
		PeriodQuery: period,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" && result.Report != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(result.Report.Text))
		return
	}

	response.Success(w, result)
}

// GetRegister implements PayrollHandler.
func (h *payrollHandlerImpl) GetRegister(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GenerateRegister(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewRegisterResponse(result))
}

// ExportRegister implements PayrollHandler.
func (h *payrollHandlerImpl) ExportRegister(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.payrollService.ExportRegister(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("X-Payroll-Run-ID", export.RunID)
	w.Header().Set("X-Payroll-Skipped", strconv.Itoa(len(export.Skipped)))
	response.File(w, export.Filename, export.ContentType, export.Data)
}

// parsePeriodQuery reads ?year=&month=. Range checks are left to the request's Validate.
func parsePeriodQuery(r *http.Request) (payroll.PeriodQuery, error) {
	var (
		q    payroll.PeriodQuery
		errs validator.ValidationErrors
	)

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"year", &q.Year},
		{"month", &q.Month},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: p.name, Message: "must be a number"})
			continue
		}
		*p.dst = n
	}

	if len(errs) > 0 {
		return payroll.PeriodQuery{}, errs
	}
	return q, nil
}
