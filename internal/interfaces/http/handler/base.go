package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seorganiza/backend/internal/domain/shared"
	"github.com/seorganiza/backend/internal/interfaces/http/dto"
	"github.com/seorganiza/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.SuccessResponse(data))
}

// Created writes a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.SuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse(dto.CodeInvalidInput, message))
}

// HandleError maps an error to its HTTP response. Domain errors carry
// their own code; binding errors become 400; everything else is a 500
// that hides the internal detail from the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.StatusForCode(domainErr.Code), dto.ErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.BadRequest(c, validationErrs.Error())
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse(dto.CodeInternalError, "Internal server error"))
}

// ParseUUIDParam reads a UUID path parameter
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// ActingUserID reads the authenticated user from the request context
func (h *BaseHandler) ActingUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse(dto.CodeUnauthorized, "Authentication required"))
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse(dto.CodeUnauthorized, "Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// ParseFilter reads pagination and search parameters from the query
func (h *BaseHandler) ParseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if page, err := atoiQuery(c, "page"); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := atoiQuery(c, "page_size"); err == nil && size > 0 {
		filter.PageSize = size
	}
	filter.Search = c.Query("search")
	if orderBy := c.Query("order_by"); orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir := c.Query("order_dir"); orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}

func atoiQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}
