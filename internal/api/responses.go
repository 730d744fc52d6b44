package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
)

var (
	ErrEmployeeIDRequired    = errors.New("employee id is missing from the request path")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("Employee ID and/or Email already exists.")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Employee added successfully."`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type validationResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func created(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusCreated, okResponse{Status: "ok", Msg: msg})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	writeJSON(ctx, httpStatus, errorResponse{Code: fasthttp.StatusMessage(httpStatus), Message: err.Error()})
}

// writeValidationError reports every violation at once; message carries the
// first one in field order so simple clients can show a single line.
func writeValidationError(ctx *fasthttp.RequestCtx, errs map[string]string) {
	writeJSON(ctx, fasthttp.StatusBadRequest, validationResponse{
		Code:    fasthttp.StatusMessage(fasthttp.StatusBadRequest),
		Message: firstViolation(errs),
		Errors:  errs,
	})
}
