package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

// Profile holds the role-shaped extension of a user account. USER profiles
// carry the seeker fields and a resume path; OWNER profiles carry the
// company fields and a logo path. Unused columns stay NULL.
type Profile struct {
	ID           string    `json:"id"                     db:"id"`
	UserID       string    `json:"userId"                 db:"user_id"`
	JobTitle     *string   `json:"jobTitle,omitempty"     db:"job_title"`
	City         *string   `json:"city,omitempty"         db:"city"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"  db:"phone_number"`
	ResumeURL    *string   `json:"resumeUrl,omitempty"    db:"resume_url"`
	CompanyName  *string   `json:"companyName,omitempty"  db:"company_name"`
	CompanyCity  *string   `json:"companyCity,omitempty"  db:"company_city"`
	Address      *string   `json:"address,omitempty"      db:"address"`
	CompanyPhone *string   `json:"companyPhone,omitempty" db:"company_phone"`
	Website      *string   `json:"website,omitempty"      db:"website"`
	OwnerPhone   *string   `json:"ownerPhone,omitempty"   db:"owner_phone"`
	LogoURL      *string   `json:"logoUrl,omitempty"      db:"logo_url"`
	CreatedAt    time.Time `json:"createdAt"              db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"              db:"updated_at"`
}

// SeekerView returns the USER-facing projection of a profile.
func (p *Profile) SeekerView() map[string]any {
	return map[string]any{
		"jobTitle":    p.JobTitle,
		"city":        p.City,
		"phoneNumber": p.PhoneNumber,
		"resumeUrl":   p.ResumeURL,
	}
}

// OwnerView returns the OWNER-facing projection of a profile.
func (p *Profile) OwnerView() map[string]any {
	return map[string]any{
		"companyName":  p.CompanyName,
		"companyCity":  p.CompanyCity,
		"address":      p.Address,
		"companyPhone": p.CompanyPhone,
		"website":      p.Website,
		"ownerPhone":   p.OwnerPhone,
		"logoUrl":      p.LogoURL,
	}
}

// CompleteProfileRequest carries profile completion fields. Which fields are
// required depends on the caller's role; FilePath is the stored upload path
// for the resume (USER) or logo (OWNER).
type CompleteProfileRequest struct {
	JobTitle     string
	City         string
	PhoneNumber  string
	CompanyName  string
	CompanyCity  string
	Address      string
	CompanyPhone string
	Website      string
	OwnerPhone   string
	FilePath     string
}

// ValidateFor validates the request for the given role.
func (r *CompleteProfileRequest) ValidateFor(role domainauth.Role) error {
	switch role {
	case domainauth.RoleUser:
		if anyBlank(r.JobTitle, r.City, r.PhoneNumber, r.FilePath) {
			return errors.New("jobTitle, city, phoneNumber and resume (PDF) required")
		}
	case domainauth.RoleOwner:
		if anyBlank(r.CompanyName, r.CompanyCity, r.Address, r.CompanyPhone, r.Website, r.OwnerPhone, r.FilePath) {
			return errors.New("companyName, companyCity, address, companyPhone, website, ownerPhone & logo required")
		}
	default:
		return errors.New("this role does not have permission to complete the profile")
	}
	return nil
}

// UpdateProfileRequest carries partial profile updates. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	JobTitle     string
	City         string
	PhoneNumber  string
	CompanyName  string
	CompanyCity  string
	Address      string
	CompanyPhone string
	Website      string
	OwnerPhone   string
	FilePath     string
}

// HasUpdatesFor reports whether any field relevant to the role is set.
func (r *UpdateProfileRequest) HasUpdatesFor(role domainauth.Role) bool {
	switch role {
	case domainauth.RoleUser:
		return !anyBlank(r.JobTitle) || !anyBlank(r.City) || !anyBlank(r.PhoneNumber) || !anyBlank(r.FilePath)
	case domainauth.RoleOwner:
		return !anyBlank(r.CompanyName) || !anyBlank(r.CompanyCity) || !anyBlank(r.Address) ||
			!anyBlank(r.CompanyPhone) || !anyBlank(r.Website) || !anyBlank(r.OwnerPhone) || !anyBlank(r.FilePath)
	default:
		return false
	}
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
