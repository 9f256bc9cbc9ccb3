package httpx

import (
	"errors"
	"mime/multipart"
	"net/http"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/service"
	"github.com/jobfinder/jobfinder-api/internal/uploads"
)

// UserHandlers provides HTTP handlers for account and profile operations.
type UserHandlers struct {
	Svc     *service.UserService
	Uploads *uploads.Store
}

// Me returns the caller's account with its role-shaped profile.
// GET /api/v1/users/me.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	res, err := h.Svc.Me(r.Context(), user)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// CompleteProfile fills in the role-required profile fields and activates
// the account. The body is multipart: text fields plus the resume (USER)
// or logo (OWNER) under "file".
// POST /api/v1/users/profile.
func (h *UserHandlers) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	form, ok := h.parseProfileForm(w, r)
	if !ok {
		return
	}

	req := model.CompleteProfileRequest{
		JobTitle:     form.field(r, "jobTitle"),
		City:         form.field(r, "city"),
		PhoneNumber:  form.field(r, "phoneNumber"),
		CompanyName:  form.field(r, "companyName"),
		CompanyCity:  form.field(r, "companyCity"),
		Address:      form.field(r, "address"),
		CompanyPhone: form.field(r, "companyPhone"),
		Website:      form.field(r, "website"),
		OwnerPhone:   form.field(r, "ownerPhone"),
	}
	if form.file != nil {
		path, err := h.Uploads.Save(form.file, uploadExtsForRole(user.Role))
		if err != nil {
			RespondError(w, err)
			return
		}
		req.FilePath = path
	}

	profile, err := h.Svc.CompleteProfile(r.Context(), user, req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// UpdateProfile applies a partial profile update; unset fields keep their
// value and the file part is optional.
// PATCH /api/v1/users/profile.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	form, ok := h.parseProfileForm(w, r)
	if !ok {
		return
	}

	req := model.UpdateProfileRequest{
		JobTitle:     form.field(r, "jobTitle"),
		City:         form.field(r, "city"),
		PhoneNumber:  form.field(r, "phoneNumber"),
		CompanyName:  form.field(r, "companyName"),
		CompanyCity:  form.field(r, "companyCity"),
		Address:      form.field(r, "address"),
		CompanyPhone: form.field(r, "companyPhone"),
		Website:      form.field(r, "website"),
		OwnerPhone:   form.field(r, "ownerPhone"),
	}
	if form.file != nil {
		path, err := h.Uploads.Save(form.file, uploadExtsForRole(user.Role))
		if err != nil {
			RespondError(w, err)
			return
		}
		req.FilePath = path
	}

	profile, err := h.Svc.UpdateProfile(r.Context(), user, req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// profileForm is a thin view over a parsed multipart request.
type profileForm struct {
	file *multipart.FileHeader
}

func (profileForm) field(r *http.Request, name string) string {
	return r.FormValue(name)
}

func (h *UserHandlers) parseProfileForm(w http.ResponseWriter, r *http.Request) (profileForm, bool) {
	const formMemoryLimit = 1 << 20
	if err := r.ParseMultipartForm(h.Uploads.MaxSize() + formMemoryLimit); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			RespondError(w, apperrors.Validation("multipart form data required"))
		} else {
			RespondError(w, apperrors.Wrap(err, apperrors.ErrCodeValidation, "malformed form data"))
		}
		return profileForm{}, false
	}

	form := profileForm{}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		form.file = files[0]
	}
	return form, true
}

func uploadExtsForRole(role domainauth.Role) []string {
	if role == domainauth.RoleOwner {
		return uploads.LogoExts
	}
	return uploads.ResumeExts
}
