package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"employee-registry/internal/dto"
)

// @Summary List employee records
// @Tags    Employees
// @Produce json
// @Success 200 {array} dto.Employee
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /employees [get]
func (s *Service) listEmployees(ctx *fasthttp.RequestCtx) {
	rows, err := s.employees.List(ctx)

	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.List: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Get one employee by employee_id
// @Tags    Employees
// @Produce json
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.Employee
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /employees/{employee_id} [get]
func (s *Service) getEmployee(ctx *fasthttp.RequestCtx) {
	employeeID := ctx.UserValue("employee_id").(string)
	if strings.TrimSpace(employeeID) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, ErrEmployeeIDRequired)
		return
	}

	row, err := s.employees.Get(ctx, employeeID)

	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Get: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}

// @Summary Create an employee record
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   request body employeeReq true "Employee payload"
// @Success 201 {object} okResponse
// @Failure 400 {object} validationResponse "Field-level violations, all collected"
// @Failure 409 {object} errorResponse "Duplicate employee id or email"
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /employees [post]
func (s *Service) createEmployee(ctx *fasthttp.RequestCtx) {
	var req employeeReq

	err := json.Unmarshal(ctx.PostBody(), &req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	now := time.Now()

	if errs := validateEmployee(req, now); len(errs) > 0 {
		writeValidationError(ctx, errs)
		return
	}

	record := buildEmployee(strings.TrimSpace(req.EmployeeID), req, now)

	if err := s.employees.Create(ctx, record); err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			writeError(ctx, fasthttp.StatusConflict, ErrEmployeeAlreadyExists)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Create: %w", err))
		return
	}

	s.publishCreated(ctx, record)

	created(ctx, "Employee added successfully.")
}

// @Summary Update an employee record (full replace, employee_id is immutable)
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   employee_id path string true "Employee ID"
// @Param   request body employeeReq true "Employee payload"
// @Success 200 {object} okResponse
// @Failure 400 {object} validationResponse "Field-level violations, all collected"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 409 {object} errorResponse "Duplicate email"
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /employees/{employee_id} [put]
func (s *Service) updateEmployee(ctx *fasthttp.RequestCtx) {
	var req employeeReq

	err := json.Unmarshal(ctx.PostBody(), &req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	employeeID := ctx.UserValue("employee_id").(string)
	if strings.TrimSpace(employeeID) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, ErrEmployeeIDRequired)
		return
	}

	// The path parameter is the key; a differing employeeId in the body is
	// overridden rather than rejected.
	req.EmployeeID = employeeID

	now := time.Now()

	if errs := validateEmployee(req, now); len(errs) > 0 {
		writeValidationError(ctx, errs)
		return
	}

	record := buildEmployee(employeeID, req, now)

	if err := s.employees.Update(ctx, record); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
			return
		}
		if errors.Is(err, dto.ErrAlreadyExists) {
			writeError(ctx, fasthttp.StatusConflict, ErrEmployeeAlreadyExists)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Update: %w", err))
		return
	}

	s.publishUpdated(ctx, record)

	ok(ctx, "Employee updated successfully.")
}

// @Summary Delete an employee record
// @Tags    Employees
// @Produce json
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse "required employee_id"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /employees/{employee_id} [delete]
func (s *Service) deleteEmployee(ctx *fasthttp.RequestCtx) {
	employeeID := ctx.UserValue("employee_id").(string)

	if strings.TrimSpace(employeeID) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, ErrEmployeeIDRequired)
		return
	}

	if err := s.employees.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Delete: %w", err))
		return
	}

	s.publishDeleted(ctx, employeeID)

	ok(ctx, "Employee deleted successfully.")
}

type validateResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// @Summary Validate an employee payload without persisting it
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   field query string false "Check only this field (live form feedback)"
// @Param   request body employeeReq true "Employee payload, may be partial"
// @Success 200 {object} validateResult
// @Failure 400 {object} errorResponse "Malformed body or unknown field"
// @Router  /employees/validate [post]
func (s *Service) validateHandler(ctx *fasthttp.RequestCtx) {
	var req employeeReq

	err := json.Unmarshal(ctx.PostBody(), &req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	now := time.Now()

	field := string(ctx.QueryArgs().Peek("field"))
	if field != "" {
		if !knownField(field) {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("unknown field '%s'", field))
			return
		}

		errs := map[string]string{}
		if msg := validateEmployeeField(req, field, now); msg != "" {
			errs[field] = msg
		}

		writeJSON(ctx, fasthttp.StatusOK, validateResult{Valid: len(errs) == 0, Errors: errs})
		return
	}

	errs := validateEmployee(req, now)

	writeJSON(ctx, fasthttp.StatusOK, validateResult{Valid: len(errs) == 0, Errors: errs})
}

// Change events are best effort: a broker fault must not fail the mutation
// that already committed.
func (s *Service) publishCreated(ctx *fasthttp.RequestCtx, e dto.Employee) {
	if s.producer == nil {
		return
	}
	if err := s.producer.ProduceCreated(ctx, uuid.New(), e); err != nil {
		log.Warn().Err(err).Str("employee_id", e.EmployeeID).Msg("created event publish failed")
	}
}

func (s *Service) publishUpdated(ctx *fasthttp.RequestCtx, e dto.Employee) {
	if s.producer == nil {
		return
	}
	if err := s.producer.ProduceUpdated(ctx, uuid.New(), e); err != nil {
		log.Warn().Err(err).Str("employee_id", e.EmployeeID).Msg("updated event publish failed")
	}
}

func (s *Service) publishDeleted(ctx *fasthttp.RequestCtx, employeeID string) {
	if s.producer == nil {
		return
	}
	if err := s.producer.ProduceDeleted(ctx, uuid.New(), employeeID); err != nil {
		log.Warn().Err(err).Str("employee_id", employeeID).Msg("deleted event publish failed")
	}
}
