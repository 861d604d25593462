package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	createUserUC createUserUseCase
	logger       logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(createUserUC createUserUseCase, log logger.Interface) *UserHandler {
	return &UserHandler{
		createUserUC: createUserUC,
		logger:       log,
	}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100" example:"tehnicar.marko"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=200" example:"Marko Marković"`
	Role     string `json:"role" validate:"required,oneof=admin technician business_partner supplier customer" example:"technician"`
	Phone    string `json:"phone" validate:"max=30"`
	Email    string `json:"email" validate:"omitempty,email,max=200"`
	// ClientID links a customer account to its client record.
	ClientID *uint `json:"client_id"`
}

// CreateUser handles POST /admin/users
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Username taken"
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidatePhone("phone", req.Phone); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userResp, err := h.createUserUC.Execute(c.Request.Context(), p, usecases.CreateUserCommand{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Email:    req.Email,
		ClientID: req.ClientID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, userResp, "User created successfully")
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "servis",
	})
}
