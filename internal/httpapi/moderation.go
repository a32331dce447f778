package httpapi

import (
	"net/http"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/moderation"

	"github.com/gin-gonic/gin"
)

type submitTextRequest struct {
	ContentText string `json:"content_text" binding:"required"`
}

// SubmitText accepts a text moderation request from an authenticated client
// service and responds with the scored decision.
func (h *Handler) SubmitText(c *gin.Context) {
	var req submitTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("content_text is required"))
		return
	}

	owner := callerService(c)
	if owner == nil {
		abort(c, errutil.Unauthorized("missing api key"))
		return
	}

	request, result, err := h.moderation.Submit(c.Request.Context(), owner, req.ContentText)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, toModerationView(request, result))
}

// GetRequest returns a request with its result.
func (h *Handler) GetRequest(c *gin.Context) {
	request, result, err := h.moderation.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, toModerationView(request, result))
}

// ListRequests returns every moderation request in submission order.
func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.moderation.ListRequests(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]requestView, 0, len(requests))
	for i := range requests {
		out = append(out, toRequestView(&requests[i]))
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

type overrideRequest struct {
	Decision        moderation.Decision `json:"decision" binding:"required"`
	ConfidenceScore *float64            `json:"confidence_score"`
	ModelVersion    *string             `json:"model_version"`
}

// OverrideResult applies a manual decision to an existing result.
func (h *Handler) OverrideResult(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("decision is required"))
		return
	}

	request, result, err := h.moderation.Override(c.Request.Context(), c.Param("id"), moderation.OverrideInput{
		Decision:        req.Decision,
		ConfidenceScore: req.ConfidenceScore,
		ModelVersion:    req.ModelVersion,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, toModerationView(request, result))
}
