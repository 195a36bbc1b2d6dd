package models

// Subscription is the top-level billing/tenant grouping for resources.
type Subscription struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"type:varchar(256);not null;uniqueIndex:idx_subscription_name" json:"name" validate:"required"`
	TenantID *string `gorm:"type:varchar(64)" json:"tenant_id"`
}

func (Subscription) TableName() string { return "subscription" }
