package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// Generic business codes. Module handlers use their own 5-digit ranges.
const (
	CodeOK              = 0
	CodeValidation      = 10001
	CodeUnauthorized    = 10002
	CodeForbidden       = 10003
	CodeTooManyRequests = 10004
	CodeBodyTooLarge    = 10005
	CodeNotFound        = 10006
	CodeConflict        = 10007
	CodeInternal        = 50000
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── success ──

// OK writes 200.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created writes 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// ── errors ──

// Error writes an error envelope with an explicit status and code.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails adds a details string, e.g. the validator message.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError writes 500 without leaking the cause.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// FromError maps an error to its kind's status and generic code.
// Internal errors never expose their message.
func FromError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	switch status {
	case http.StatusNotFound:
		NotFound(c, CodeNotFound, err.Error())
	case http.StatusBadRequest:
		BadRequest(c, CodeValidation, err.Error())
	case http.StatusUnauthorized:
		Unauthorized(c, CodeUnauthorized, err.Error())
	case http.StatusForbidden:
		Forbidden(c, CodeForbidden, err.Error())
	case http.StatusConflict:
		Conflict(c, CodeConflict, err.Error())
	default:
		InternalError(c)
	}
}
