package httpapi

import (
	"net/http"
	"time"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/admin"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges admin credentials for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("username and password are required"))
		return
	}

	session, err := h.admins.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

type createUserRequest struct {
	Username string     `json:"username" binding:"required"`
	Email    string     `json:"email" binding:"required"`
	Password string     `json:"password" binding:"required"`
	Role     admin.Role `json:"role"`
}

// CreateUser registers a new admin user.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("username, email and password are required"))
		return
	}

	user, err := h.admins.CreateUser(c.Request.Context(), admin.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserView(user))
}

// ListUsers returns all admin users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.admins.ListUsers(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}
