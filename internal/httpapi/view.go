package httpapi

import (
	"time"

	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/apikey"
	"moderation-controlplane/services/category"
	"moderation-controlplane/services/moderation"
	"moderation-controlplane/services/service"
)

// Response shapes. Models keep gorm tags only; what goes over the wire is
// mapped here so storage columns never leak by accident.

type serviceView struct {
	ID               string    `json:"service_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ContactEmail     string    `json:"contact_email"`
	RegistrationDate time.Time `json:"registration_date"`
	IsActive         bool      `json:"is_active"`
}

func toServiceView(s *service.WebService) serviceView {
	return serviceView{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		ContactEmail:     s.ContactEmail,
		RegistrationDate: s.RegistrationDate,
		IsActive:         s.IsActive,
	}
}

type apiKeyView struct {
	ID        string     `json:"key_id"`
	ServiceID string     `json:"service_id"`
	KeyPrefix string     `json:"key_prefix"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

func toAPIKeyView(k *apikey.APIKey) apiKeyView {
	return apiKeyView{
		ID:        k.ID,
		ServiceID: k.ServiceID,
		KeyPrefix: k.KeyPrefix,
		CreatedAt: k.CreatedAt,
		ExpiresAt: k.ExpiresAt,
		IsActive:  k.IsActive,
		LastUsed:  k.LastUsed,
	}
}

type userView struct {
	ID        string     `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      admin.Role `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
}

func toUserView(u *admin.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
	}
}

type requestView struct {
	ID          string                   `json:"request_id"`
	ServiceID   string                   `json:"service_id"`
	Timestamp   time.Time                `json:"timestamp"`
	ContentType moderation.ContentType   `json:"content_type"`
	Status      moderation.RequestStatus `json:"status"`
}

func toRequestView(r *moderation.Request) requestView {
	return requestView{
		ID:          r.ID,
		ServiceID:   r.ServiceID,
		Timestamp:   r.Timestamp,
		ContentType: r.ContentType,
		Status:      r.Status,
	}
}

type resultView struct {
	ID              string                 `json:"result_id"`
	RequestID       string                 `json:"request_id"`
	Decision        moderation.Decision    `json:"decision"`
	ConfidenceScore float64                `json:"confidence_score"`
	ModelVersion    string                 `json:"model_version"`
	LabelScores     map[string]interface{} `json:"label_scores"`
	ProcessedAt     time.Time              `json:"processed_at"`
}

func toResultView(r *moderation.Result) resultView {
	return resultView{
		ID:              r.ID,
		RequestID:       r.RequestID,
		Decision:        r.Decision,
		ConfidenceScore: r.ConfidenceScore,
		ModelVersion:    r.ModelVersion,
		LabelScores:     r.LabelScores,
		ProcessedAt:     r.ProcessedAt,
	}
}

type moderationView struct {
	Request requestView `json:"request"`
	Result  *resultView `json:"result,omitempty"`
}

func toModerationView(req *moderation.Request, res *moderation.Result) moderationView {
	v := moderationView{Request: toRequestView(req)}
	if res != nil {
		rv := toResultView(res)
		v.Result = &rv
	}
	return v
}

type categoryView struct {
	ID                   string                `json:"category_id"`
	Type                 category.CategoryType `json:"category_type"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	AutoRejectThreshold  float64               `json:"auto_reject_threshold"`
	HumanReviewThreshold float64               `json:"human_review_threshold"`
	IsEnabled            bool                  `json:"is_enabled"`
}

func toCategoryView(c *category.ViolationCategory) categoryView {
	return categoryView{
		ID:                   c.ID,
		Type:                 c.Type,
		Name:                 c.Name,
		Description:          c.Description,
		AutoRejectThreshold:  c.AutoRejectThreshold,
		HumanReviewThreshold: c.HumanReviewThreshold,
		IsEnabled:            c.IsEnabled,
	}
}

type ruleView struct {
	ID         string              `json:"rule_id"`
	CategoryID string              `json:"category_id"`
	Action     category.RuleAction `json:"action"`
	Priority   int                 `json:"priority"`
	Conditions []string            `json:"conditions"`
	IsActive   bool                `json:"is_active"`
}

func toRuleView(r *category.Rule) ruleView {
	return ruleView{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		Action:     r.Action,
		Priority:   r.Priority,
		Conditions: r.Conditions,
		IsActive:   r.IsActive,
	}
}
