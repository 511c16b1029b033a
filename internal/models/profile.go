package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes individual recipients from organizations
type AccountType string

const (
	AccountTypeIndividual   AccountType = "individual"
	AccountTypeOrganization AccountType = "organization"
)

// Profile holds the personal or organization details of an authenticated user
type Profile struct {
	ID                      uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	FullName                string      `json:"full_name"`
	Phone                   string      `json:"phone"`
	Address                 string      `json:"address"`
	City                    string      `json:"city"`
	State                   string      `json:"state"`
	Zip                     string      `json:"zip"`
	AccountType             AccountType `json:"account_type" gorm:"not null;default:individual"`
	OrganizationName        string      `json:"organization_name,omitempty"`
	OrganizationDescription string      `json:"organization_description,omitempty"`
	TaxID                   string      `json:"tax_id,omitempty"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// ProfileRequest is the payload for creating or editing the caller's profile
type ProfileRequest struct {
	FullName                string      `json:"full_name" validate:"max=200"`
	Phone                   string      `json:"phone" validate:"max=50"`
	Address                 string      `json:"address"`
	City                    string      `json:"city"`
	State                   string      `json:"state"`
	Zip                     string      `json:"zip"`
	AccountType             AccountType `json:"account_type" validate:"required,oneof=individual organization"`
	OrganizationName        string      `json:"organization_name" validate:"required_if=AccountType organization"`
	OrganizationDescription string      `json:"organization_description"`
	TaxID                   string      `json:"tax_id"`
}
