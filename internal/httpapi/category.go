package httpapi

import (
	"net/http"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/category"

	"github.com/gin-gonic/gin"
)

type upsertCategoryRequest struct {
	Type                 category.CategoryType `json:"category_type" binding:"required"`
	Name                 string                `json:"name" binding:"required"`
	Description          string                `json:"description"`
	AutoRejectThreshold  *float64              `json:"auto_reject_threshold"`
	HumanReviewThreshold *float64              `json:"human_review_threshold"`
	IsEnabled            *bool                 `json:"is_enabled"`
}

// UpsertCategory creates or replaces the category configuration for a type.
func (h *Handler) UpsertCategory(c *gin.Context) {
	var req upsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("category_type and name are required"))
		return
	}

	in := category.UpsertCategoryInput{
		Type:                 req.Type,
		Name:                 req.Name,
		Description:          req.Description,
		AutoRejectThreshold:  0.9,
		HumanReviewThreshold: 0.6,
		IsEnabled:            true,
	}
	if req.AutoRejectThreshold != nil {
		in.AutoRejectThreshold = *req.AutoRejectThreshold
	}
	if req.HumanReviewThreshold != nil {
		in.HumanReviewThreshold = *req.HumanReviewThreshold
	}
	if req.IsEnabled != nil {
		in.IsEnabled = *req.IsEnabled
	}

	cat, err := h.categories.UpsertCategory(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryView(cat))
}

// ListCategories returns all configured violation categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]categoryView, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryView(&categories[i]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

type createRuleRequest struct {
	CategoryType category.CategoryType `json:"category_type" binding:"required"`
	Action       category.RuleAction   `json:"action" binding:"required"`
	Priority     *int                  `json:"priority"`
	Conditions   []string              `json:"conditions"`
}

// CreateRule attaches a rule to an enabled category.
func (h *Handler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errutil.ValidationFailed("category_type and action are required"))
		return
	}

	rule, err := h.categories.CreateRule(c.Request.Context(), category.CreateRuleInput{
		CategoryType: req.CategoryType,
		Action:       req.Action,
		Priority:     req.Priority,
		Conditions:   req.Conditions,
		IsActive:     true,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRuleView(rule))
}

// ListRules returns all rules ordered by priority.
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.categories.ListRules(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	out := make([]ruleView, 0, len(rules))
	for i := range rules {
		out = append(out, toRuleView(&rules[i]))
	}
	c.JSON(http.StatusOK, gin.H{"rules": out})
}
