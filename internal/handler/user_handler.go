package handler

import (
	"context"
	"net/http"
	"time"

	"tracker/internal/middleware"
	"tracker/internal/model"
	"tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	UserResolver
	Register(ctx context.Context, in service.RegisterInput) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Logout(ctx context.Context, token string) error
	CreateUser(ctx context.Context, actor *model.User, in service.NewUserInput) (*model.User, error)
	ListUsers(ctx context.Context, actor *model.User) ([]model.User, error)
}

type UserHandler struct {
	auth AuthService
}

func NewUserHandler(auth AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// RegisterRequest создает компанию и ее первого администратора
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2"`
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest добавляет сотрудника в компанию администратора
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin employee"`
}

type UserResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
	}
}

func toAuthResponse(s *service.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		User:      toUserResponse(s.User),
	}
}

// Register godoc
// @Summary      Register a company
// @Description  Creates a company and its first admin, returns a token
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Company and admin"
// @Success      201      {object}  AuthResponse
// @Failure      400,409  {object}  ErrorResponse
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		CompanyName: req.CompanyName,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthResponse(session))
}

// Login godoc
// @Summary  Log in
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    request  body      LoginRequest  true  "Credentials"
// @Success  200      {object}  AuthResponse
// @Failure  400,401  {object}  ErrorResponse
// @Router   /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(session))
}

// Logout godoc
// @Summary   Revoke the current token
// @Tags      Users
// @Security  BearerAuth
// @Success   204
// @Router    /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateUser godoc
// @Summary   Add a company member
// @Tags      Users
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateUserRequest  true  "New member"
// @Success   201      {object}  UserResponse
// @Failure   400,403,409  {object}  ErrorResponse
// @Router    /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor := currentUser(c, h.auth)
	if actor == nil {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), actor, service.NewUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// ListUsers godoc
// @Summary   List company members
// @Tags      Users
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}   UserResponse
// @Failure   403  {object}  ErrorResponse
// @Router    /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor := currentUser(c, h.auth)
	if actor == nil {
		return
	}

	users, err := h.auth.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Me returns the authenticated account
// @Summary   Current user
// @Tags      Users
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  UserResponse
// @Router    /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	actor := currentUser(c, h.auth)
	if actor == nil {
		return
	}
	c.JSON(http.StatusOK, toUserResponse(actor))
}
