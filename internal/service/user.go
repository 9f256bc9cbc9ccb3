package service

import (
	"context"

	"github.com/jobfinder/jobfinder-api/internal/core"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// UserService handles profile completion and account views.
type UserService struct {
	users    core.UserRepository
	profiles core.ProfileRepository
}

// NewUserService constructs a new UserService.
func NewUserService(users core.UserRepository, profiles core.ProfileRepository) *UserService {
	return &UserService{users: users, profiles: profiles}
}

// MeResult is the account view returned by GET /users/me.
type MeResult struct {
	User    model.User     `json:"user"`
	Profile map[string]any `json:"profile"`
}

// Me returns the caller's account with the role-shaped profile projection.
func (s *UserService) Me(ctx context.Context, user *model.User) (*MeResult, error) {
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	res := &MeResult{User: user.Sanitized()}
	switch user.Role {
	case domainauth.RoleUser:
		res.Profile = profile.SeekerView()
	case domainauth.RoleOwner:
		res.Profile = profile.OwnerView()
	default:
		res.Profile = map[string]any{}
	}
	return res, nil
}

// CompleteProfile fills in the role-required profile fields and activates the
// account. Seekers provide job details plus a resume; owners provide company
// details plus a logo.
func (s *UserService) CompleteProfile(ctx context.Context, user *model.User, req model.CompleteProfileRequest) (*model.Profile, error) {
	if err := req.ValidateFor(user.Role); err != nil {
		if user.Role != domainauth.RoleUser && user.Role != domainauth.RoleOwner {
			return nil, apperrors.Forbidden(err.Error())
		}
		return nil, apperrors.Validation(err.Error())
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	applyCompleteRequest(profile, user.Role, req)

	updated, err := s.profiles.Update(ctx, profile)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		if activeErr := s.users.SetActive(ctx, user.ID, true); activeErr != nil {
			return nil, activeErr
		}
	}
	return updated, nil
}

// UpdateProfile applies a partial update to an already completed profile.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, req model.UpdateProfileRequest) (*model.Profile, error) {
	if user.Role != domainauth.RoleUser && user.Role != domainauth.RoleOwner {
		return nil, apperrors.Forbidden("this role does not have a profile to update")
	}
	if !req.HasUpdatesFor(user.Role) {
		return nil, apperrors.Validation("at least one field must be updated")
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	applyUpdateRequest(profile, user.Role, req)

	return s.profiles.Update(ctx, profile)
}

func applyCompleteRequest(p *model.Profile, role domainauth.Role, req model.CompleteProfileRequest) {
	if role == domainauth.RoleUser {
		p.JobTitle = strPtr(req.JobTitle)
		p.City = strPtr(req.City)
		p.PhoneNumber = strPtr(req.PhoneNumber)
		p.ResumeURL = strPtr(req.FilePath)
		return
	}
	p.CompanyName = strPtr(req.CompanyName)
	p.CompanyCity = strPtr(req.CompanyCity)
	p.Address = strPtr(req.Address)
	p.CompanyPhone = strPtr(req.CompanyPhone)
	p.Website = strPtr(req.Website)
	p.OwnerPhone = strPtr(req.OwnerPhone)
	p.LogoURL = strPtr(req.FilePath)
}

func applyUpdateRequest(p *model.Profile, role domainauth.Role, req model.UpdateProfileRequest) {
	if role == domainauth.RoleUser {
		setIfPresent(&p.JobTitle, req.JobTitle)
		setIfPresent(&p.City, req.City)
		setIfPresent(&p.PhoneNumber, req.PhoneNumber)
		setIfPresent(&p.ResumeURL, req.FilePath)
		return
	}
	setIfPresent(&p.CompanyName, req.CompanyName)
	setIfPresent(&p.CompanyCity, req.CompanyCity)
	setIfPresent(&p.Address, req.Address)
	setIfPresent(&p.CompanyPhone, req.CompanyPhone)
	setIfPresent(&p.Website, req.Website)
	setIfPresent(&p.OwnerPhone, req.OwnerPhone)
	setIfPresent(&p.LogoURL, req.FilePath)
}

func strPtr(s string) *string { return &s }

func setIfPresent(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}
