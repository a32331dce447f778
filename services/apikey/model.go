package apikey

import "time"

// PrefixLength is the number of leading plaintext characters persisted as a
// lookup index. The prefix narrows candidates; it never proves anything on
// its own, and collisions across services are tolerated.
const PrefixLength = 8

// APIKey stores the one-way hash of an issued key. The plaintext is returned
// exactly once at issuance and is never persisted or logged.
type APIKey struct {
	ID         string     `gorm:"column:key_id;primaryKey"`
	ServiceID  string     `gorm:"column:service_id;not null;index"`
	SecretHash string     `gorm:"column:secret_hash;not null"`
	KeyPrefix  string     `gorm:"column:key_prefix;not null;index"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
	IsActive   bool       `gorm:"column:is_active;default:true"`
	LastUsed   *time.Time `gorm:"column:last_used"`
}

// TableName sets the table name for the APIKey model.
func (APIKey) TableName() string { return "api_keys" }
