package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/mocks"
)

type applicationFixture struct {
	svc           *ApplicationService
	applications  *mocks.MockApplicationRepository
	jobs          *mocks.MockJobRepository
	profiles      *mocks.MockProfileRepository
	notifications *mocks.MockNotificationRepository
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &applicationFixture{
		applications:  mocks.NewMockApplicationRepository(ctrl),
		jobs:          mocks.NewMockJobRepository(ctrl),
		profiles:      mocks.NewMockProfileRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
	}
	f.svc = NewApplicationService(ApplicationServiceOptions{
		Applications:  f.applications,
		Jobs:          f.jobs,
		Profiles:      f.profiles,
		Notifications: NewNotificationService(f.notifications),
	})
	return f
}

func activeSeeker() *model.User {
	return &model.User{
		ID:       "user-1",
		FullName: "jane doe",
		Email:    "jane@example.com",
		Role:     domainauth.RoleUser,
		IsActive: true,
	}
}

func seekerProfile() *model.Profile {
	resume := "uploads/resume.pdf"
	return &model.Profile{UserID: "user-1", ResumeURL: &resume}
}

func TestApplicationService_Apply(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	f.profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(seekerProfile(), nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "owner-1", Title: "Backend Engineer", IsActive: true}, nil)
	f.applications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, app *model.Application) (*model.Application, error) {
			assert.Equal(t, "jane doe", app.FullName)
			assert.Equal(t, "uploads/resume.pdf", app.ResumeURL)
			out := *app
			out.ID = "app-1"
			return &out, nil
		})
	f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (*model.Notification, error) {
			assert.Equal(t, "owner-1", n.RecipientID)
			assert.Equal(t, model.NotificationTypeJob, n.Type)
			return n, nil
		})

	app, err := f.svc.Apply(ctx, activeSeeker(), model.ApplyRequest{JobID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
}

func TestApplicationService_Apply_NotificationFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	ctx := context.Background()

	applications := mocks.NewMockApplicationRepository(ctrl)
	jobs := mocks.NewMockJobRepository(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)

	var logs bytes.Buffer
	svc := NewApplicationService(ApplicationServiceOptions{
		Applications:  applications,
		Jobs:          jobs,
		Profiles:      profiles,
		Notifications: NewNotificationService(notifications),
		Logger:        slog.New(slog.NewTextHandler(&logs, nil)),
	})

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(seekerProfile(), nil)
	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "owner-1", Title: "Backend Engineer", IsActive: true}, nil)
	applications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, app *model.Application) (*model.Application, error) {
			out := *app
			out.ID = "app-1"
			return &out, nil
		})
	notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
		nil, apperrors.Internal("notification store down"))

	app, err := svc.Apply(ctx, activeSeeker(), model.ApplyRequest{JobID: "job-1"})
	require.NoError(t, err, "a failed notification must not undo the application")
	assert.Equal(t, "app-1", app.ID)
	assert.Contains(t, logs.String(), "failed to notify owner of new application")
}

func TestApplicationService_Apply_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete profile", func(t *testing.T) {
		f := newApplicationFixture(t)
		user := activeSeeker()
		user.IsActive = false
		_, err := f.svc.Apply(ctx, user, model.ApplyRequest{JobID: "job-1"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("no resume on file", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(&model.Profile{UserID: "user-1"}, nil)
		_, err := f.svc.Apply(ctx, activeSeeker(), model.ApplyRequest{JobID: "job-1"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("inactive job", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(seekerProfile(), nil)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(&model.Job{ID: "job-1"}, nil)
		_, err := f.svc.Apply(ctx, activeSeeker(), model.ApplyRequest{JobID: "job-1"})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("duplicate application", func(t *testing.T) {
		f := newApplicationFixture(t)
		f.profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(seekerProfile(), nil)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
			&model.Job{ID: "job-1", OwnerID: "owner-1", IsActive: true}, nil)
		f.applications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
			nil, apperrors.Conflict("This value already exists. Please choose a different one."))

		_, err := f.svc.Apply(ctx, activeSeeker(), model.ApplyRequest{JobID: "job-1"})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "You have already applied to this job", err.Error())
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	owner := &model.User{ID: "owner-1", FullName: "acme hr", Role: domainauth.RoleOwner}

	f.applications.EXPECT().GetByID(gomock.Any(), "app-1").Return(
		&model.Application{ID: "app-1", JobID: "job-1", UserID: "user-1"}, nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "owner-1", Title: "Backend Engineer"}, nil)
	f.applications.EXPECT().UpdateStatus(gomock.Any(), "app-1", model.ApplicationStatusInterview).Return(
		&model.Application{ID: "app-1", Status: model.ApplicationStatusInterview}, nil)
	f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (*model.Notification, error) {
			assert.Equal(t, "user-1", n.RecipientID)
			assert.Contains(t, n.Message, "Interview approved")
			return n, nil
		})

	updated, err := f.svc.UpdateStatus(ctx, owner, "app-1",
		model.UpdateApplicationStatusRequest{Status: model.ApplicationStatusInterview})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInterview, updated.Status)
}

func TestApplicationService_UpdateStatus_ForeignJob(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	owner := &model.User{ID: "owner-1", Role: domainauth.RoleOwner}

	f.applications.EXPECT().GetByID(gomock.Any(), "app-1").Return(
		&model.Application{ID: "app-1", JobID: "job-1"}, nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "someone-else"}, nil)

	_, err := f.svc.UpdateStatus(ctx, owner, "app-1",
		model.UpdateApplicationStatusRequest{Status: model.ApplicationStatusReviewed})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationService_ListForJob_Ownership(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "owner-1"}, nil)
	f.applications.EXPECT().ListByJob(gomock.Any(), "job-1").Return(
		[]*model.Application{{ID: "app-1"}}, nil)

	apps, err := f.svc.ListForJob(ctx, "owner-1", "job-1")
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}
