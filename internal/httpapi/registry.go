package httpapi

import (
	"net/http"
	"time"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/service"

	"github.com/gin-gonic/gin"
)

type createServiceRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email" binding:"required"`
}

// CreateService registers a new client service.
func (h *Handler) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("name and contact_email are required"))
		return
	}

	svc, err := h.services.Create(c.Request.Context(), service.CreateInput{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		IsActive:     true,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, toServiceView(svc))
}

// ListServices returns all registered client services.
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]serviceView, 0, len(services))
	for i := range services {
		out = append(out, toServiceView(&services[i]))
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

type updateServiceRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateService toggles a service's active flag.
func (h *Handler) UpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("is_active is required"))
		return
	}

	svc, err := h.services.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, toServiceView(svc))
}

type issueAPIKeyRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

type issueAPIKeyResponse struct {
	APIKey string     `json:"api_key"`
	Key    apiKeyView `json:"key"`
}

// IssueAPIKey creates a key for a service. The response is the only place the
// plaintext ever appears.
func (h *Handler) IssueAPIKey(c *gin.Context) {
	var req issueAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		abort(c, errutil.ValidationFailed("invalid request body"))
		return
	}

	plaintext, key, err := h.keys.Issue(c.Request.Context(), c.Param("id"), req.ExpiresAt)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, issueAPIKeyResponse{
		APIKey: plaintext,
		Key:    toAPIKeyView(key),
	})
}

// ListAPIKeys returns key metadata for a service. Hashes never leave the
// store.
func (h *Handler) ListAPIKeys(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]apiKeyView, 0, len(keys))
	for i := range keys {
		out = append(out, toAPIKeyView(&keys[i]))
	}
	c.JSON(http.StatusOK, gin.H{"keys": out})
}

type updateAPIKeyRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateAPIKey toggles a key's active flag.
func (h *Handler) UpdateAPIKey(c *gin.Context) {
	var req updateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("is_active is required"))
		return
	}

	key, err := h.keys.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, toAPIKeyView(key))
}
