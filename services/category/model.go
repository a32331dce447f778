package category

import "gorm.io/datatypes"

// CategoryType enumerates the supported violation categories.
type CategoryType string

const (
	TypeToxicity       CategoryType = "TOXICITY"
	TypeSpam           CategoryType = "SPAM"
	TypeHateSpeech     CategoryType = "HATE_SPEECH"
	TypeNSFW           CategoryType = "NSFW"
	TypeIllegalContent CategoryType = "ILLEGAL_CONTENT"
)

// Valid reports whether the category type is known.
func (t CategoryType) Valid() bool {
	switch t {
	case TypeToxicity, TypeSpam, TypeHateSpeech, TypeNSFW, TypeIllegalContent:
		return true
	default:
		return false
	}
}

// RuleAction enumerates what a matching rule would do.
type RuleAction string

const (
	ActionAutoApprove   RuleAction = "AUTO_APPROVE"
	ActionAutoReject    RuleAction = "AUTO_REJECT"
	ActionFlagForReview RuleAction = "FLAG_FOR_REVIEW"
)

// Valid reports whether the rule action is known.
func (a RuleAction) Valid() bool {
	switch a {
	case ActionAutoApprove, ActionAutoReject, ActionFlagForReview:
		return true
	default:
		return false
	}
}

// DefaultRulePriority applies when a rule is created without one.
const DefaultRulePriority = 100

// ViolationCategory is a configurable class of policy violation with its own
// decision thresholds.
type ViolationCategory struct {
	ID                   string       `gorm:"column:category_id;primaryKey"`
	Type                 CategoryType `gorm:"column:category_type;uniqueIndex;not null"`
	Name                 string       `gorm:"column:name;not null"`
	Description          string       `gorm:"column:description"`
	AutoRejectThreshold  float64      `gorm:"column:auto_reject_threshold;default:0.9"`
	HumanReviewThreshold float64      `gorm:"column:human_review_threshold;default:0.6"`
	IsEnabled            bool         `gorm:"column:is_enabled;default:true"`
}

// TableName sets the table name for the ViolationCategory model.
func (ViolationCategory) TableName() string { return "violation_categories" }

// Rule binds an action to a category. Conditions are stored as an opaque JSON
// list and are not evaluated anywhere; the decision policy works off score
// thresholds only.
type Rule struct {
	ID         string                      `gorm:"column:rule_id;primaryKey"`
	CategoryID string                      `gorm:"column:category_id;index;not null"`
	Action     RuleAction                  `gorm:"column:action;not null"`
	Priority   int                         `gorm:"column:priority;default:100"`
	Conditions datatypes.JSONSlice[string] `gorm:"column:conditions"`
	IsActive   bool                        `gorm:"column:is_active;default:true"`
}

// TableName sets the table name for the Rule model.
func (Rule) TableName() string { return "moderation_rules" }
