package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/seorganiza/backend/internal/application/identity"
	"github.com/seorganiza/backend/internal/interfaces/http/dto"
)

// UserHandler exposes account management. Authorization happens in the
// service layer against the acting user, not against token claims, so
// a demoted superuser loses access as soon as the database says so.
type UserHandler struct {
	BaseHandler
	service *appidentity.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(service *appidentity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes mounts the user routes on the group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	actingID, ok := h.ActingUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	response, err := h.service.CreateUser(c.Request.Context(), actingID, appidentity.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Superuser: req.Superuser,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	actingID, ok := h.ActingUserID(c)
	if !ok {
		return
	}

	page, err := h.service.ListUsers(c.Request.Context(), actingID, h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	actingID, ok := h.ActingUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetUser(c.Request.Context(), actingID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actingID, ok := h.ActingUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actingID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
