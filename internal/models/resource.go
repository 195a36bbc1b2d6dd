package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resource is the central inventoried entity. Tags are stored twice: as a
// jsonb blob on the row and decomposed into resource_tag rows. The two
// representations are replaced together inside one transaction so they can
// never diverge.
type Resource struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AzureID          *string        `gorm:"column:azure_id;type:varchar(512);uniqueIndex:idx_resource_azure_id" json:"azure_id"`
	Name             string         `gorm:"type:varchar(256);not null" json:"name" validate:"required"`
	Type             string         `gorm:"column:type;type:varchar(128);not null;index:idx_resource_type" json:"type" validate:"required"`
	Kind             *string        `gorm:"type:varchar(128)" json:"kind"`
	Location         string         `gorm:"type:varchar(64);not null;index:idx_resource_location" json:"location" validate:"required"`
	SubscriptionID   *int64         `gorm:"index" json:"subscription_id"`
	ResourceGroupID  *int64         `gorm:"index" json:"resource_group_id"`
	TagsJSON         datatypes.JSON `gorm:"column:tags_json;type:jsonb" json:"tags"`
	ExtendedLocation *string        `gorm:"type:varchar(256)" json:"extended_location"`
	Vendor           *string        `gorm:"type:varchar(128);index:idx_resource_vendor" json:"vendor"`
	Environment      *string        `gorm:"type:varchar(64);index:idx_resource_environment" json:"environment"`
	Provisioner      *string        `gorm:"type:varchar(128)" json:"provisioner"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	Subscription  *Subscription  `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT" json:"-"`
	ResourceGroup *ResourceGroup `gorm:"foreignKey:ResourceGroupID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Resource) TableName() string { return "resource" }

// ResourceTag is one decomposed key/value row of a resource's tag blob.
// (resource_id, key) is the identity; rows cascade with the resource.
type ResourceTag struct {
	ResourceID int64   `gorm:"primaryKey;autoIncrement:false" json:"resource_id"`
	Key        string  `gorm:"column:key;type:varchar(128);primaryKey;index:idx_resource_tag_key;index:idx_resource_tag_key_value,priority:1" json:"key"`
	Value      *string `gorm:"type:text;index:idx_resource_tag_key_value,priority:2" json:"value"`

	Resource *Resource `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResourceTag) TableName() string { return "resource_tag" }

// ResourceApplicationMap links a resource to an application under a relation
// type, so the same pair can relate more than once with different semantics.
type ResourceApplicationMap struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ResourceID    int64  `gorm:"not null;uniqueIndex:idx_resource_application_rel" json:"resource_id"`
	ApplicationID int64  `gorm:"not null;uniqueIndex:idx_resource_application_rel" json:"application_id"`
	RelationType  string `gorm:"type:varchar(64);not null;default:uses;uniqueIndex:idx_resource_application_rel" json:"relation_type"`

	Resource    *Resource    `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
	Application *Application `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ResourceApplicationMap) TableName() string { return "resource_application_map" }
