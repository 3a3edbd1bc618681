package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pdv/terminal/internal/domain/shared"
	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 response for a request binding failure.
// Field-level validator errors are flattened into one readable message.
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s: failed '%s' validation", fe.Field(), fe.Tag()))
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, strings.Join(parts, "; "))
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
}

// HandleError maps service-layer failures onto HTTP responses:
// domain validation errors become 400 (409 for in-flight conflicts),
// backend API errors pass their status through, transport failures
// become 502.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case "CHECKOUT_IN_FLIGHT":
			status = http.StatusConflict
		case "NOT_FOUND":
			status = http.StatusNotFound
		}
		h.Error(c, status, domainErr.Code, domainErr.Message)
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		code := dto.ErrCodeBackend
		if apiErr.IsUnauthorized() {
			code = dto.ErrCodeUnauthorized
		}
		h.Error(c, apiErr.StatusCode, code, apiErr.Message)
		return
	}

	if errors.Is(err, api.ErrBackendUnavailable) {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeBackendUnavailable, err.Error())
		return
	}

	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, err.Error())
}
