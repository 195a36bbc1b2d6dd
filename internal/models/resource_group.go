package models

// ResourceGroup belongs to exactly one subscription. Deleting a subscription
// that still owns groups is rejected by the FK (no cascade on this edge).
type ResourceGroup struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(256);not null;uniqueIndex:idx_resource_group_name_sub" json:"name" validate:"required"`
	SubscriptionID int64  `gorm:"not null;uniqueIndex:idx_resource_group_name_sub;index" json:"subscription_id" validate:"required"`

	Subscription *Subscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (ResourceGroup) TableName() string { return "resource_group" }
