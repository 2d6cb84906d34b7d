package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Slug     string `json:"slug"` // opcional: se deriva del nombre si viene vacío
	PlanType string `json:"plan_type" validate:"omitempty,oneof=starter professional enterprise"`
}

// UpdateOrganizationRequest entrada para actualizar una organización (campos opcionales).
type UpdateOrganizationRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	PlanType           *string `json:"plan_type" validate:"omitempty,oneof=starter professional enterprise"`
	SubscriptionStatus *string `json:"subscription_status" validate:"omitempty,oneof=active past_due cancelled"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	PlanType           string    `json:"plan_type"`
	SubscriptionStatus string    `json:"subscription_status"`
	OwnerID            string    `json:"owner_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// OrganizationStatsDTO conteos desnormalizados para la ficha de la organización.
type OrganizationStatsDTO struct {
	Devices      int64 `json:"devices"`
	Scans        int64 `json:"scans"`
	LandingPages int64 `json:"landing_pages"`
	Members      int64 `json:"members"`
}

// OrganizationDetailResponse organización + rollup de conteos.
type OrganizationDetailResponse struct {
	OrganizationResponse
	Stats OrganizationStatsDTO `json:"stats"`
}

// OrganizationListResponse lista paginada de organizaciones.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
