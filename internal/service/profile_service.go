package service

import (
	"context"

	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/repository"
)

// ProfileService reads and edits the caller's profile
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
	}
}

// Get returns the caller's profile
func (s *ProfileService) Get(ctx context.Context, id auth.Identity) (*models.Profile, error) {
	return s.profiles.GetProfile(ctx, id.UserID)
}

// Update creates or replaces the caller's profile. Organization fields are
// cleared for individual accounts.
func (s *ProfileService) Update(ctx context.Context, id auth.Identity, req models.ProfileRequest) (*models.Profile, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	p := &models.Profile{
		ID:          id.UserID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		AccountType: req.AccountType,
	}
	if req.AccountType == models.AccountTypeOrganization {
		p.OrganizationName = req.OrganizationName
		p.OrganizationDescription = req.OrganizationDescription
		p.TaxID = req.TaxID
	}

	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
