package types

// CreateResourceRequest mirrors the Resource entity; tags arrive as a flat
// string-to-string mapping.
type CreateResourceRequest struct {
	AzureID          *string           `json:"azure_id"`
	Name             string            `json:"name" validate:"required"`
	Type             string            `json:"type" validate:"required"`
	Kind             *string           `json:"kind"`
	Location         string            `json:"location" validate:"required"`
	SubscriptionID   *int64            `json:"subscription_id"`
	ResourceGroupID  *int64            `json:"resource_group_id"`
	Tags             map[string]string `json:"tags"`
	ExtendedLocation *string           `json:"extended_location"`
	Vendor           *string           `json:"vendor"`
	Environment      *string           `json:"environment"`
	Provisioner      *string           `json:"provisioner"`
}

// UpdateResourceRequest merges supplied fields into an existing resource.
// A present tags map fully replaces the stored tag set.
type UpdateResourceRequest struct {
	AzureID          *string           `json:"azure_id"`
	Name             *string           `json:"name" validate:"omitempty,min=1"`
	Type             *string           `json:"type" validate:"omitempty,min=1"`
	Kind             *string           `json:"kind"`
	Location         *string           `json:"location" validate:"omitempty,min=1"`
	SubscriptionID   *int64            `json:"subscription_id"`
	ResourceGroupID  *int64            `json:"resource_group_id"`
	Tags             map[string]string `json:"tags"`
	ExtendedLocation *string           `json:"extended_location"`
	Vendor           *string           `json:"vendor"`
	Environment      *string           `json:"environment"`
	Provisioner      *string           `json:"provisioner"`
}

type CreateSubscriptionRequest struct {
	Name     string  `json:"name" validate:"required"`
	TenantID *string `json:"tenant_id"`
}

type UpdateSubscriptionRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	TenantID *string `json:"tenant_id"`
}

type CreateResourceGroupRequest struct {
	Name           string `json:"name" validate:"required"`
	SubscriptionID int64  `json:"subscription_id" validate:"required"`
}

type UpdateResourceGroupRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1"`
	SubscriptionID *int64  `json:"subscription_id"`
}

type CreateApplicationRequest struct {
	Code       *string `json:"code" validate:"omitempty,min=1"`
	Name       *string `json:"name"`
	OwnerTeam  *string `json:"owner_team"`
	OwnerEmail *string `json:"owner_email" validate:"omitempty,email"`
}

type UpdateApplicationRequest struct {
	Code       *string `json:"code" validate:"omitempty,min=1"`
	Name       *string `json:"name"`
	OwnerTeam  *string `json:"owner_team"`
	OwnerEmail *string `json:"owner_email" validate:"omitempty,email"`
}
