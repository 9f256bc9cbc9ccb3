package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/mocks"
)

type moderationFixture struct {
	svc           *ModerationService
	jobs          *mocks.MockJobRepository
	statusChanges *mocks.MockStatusChangeRepository
	notifications *mocks.MockNotificationRepository
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &moderationFixture{
		jobs:          mocks.NewMockJobRepository(ctrl),
		statusChanges: mocks.NewMockStatusChangeRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
	}
	f.svc = NewModerationService(ModerationServiceOptions{
		Jobs:          f.jobs,
		StatusChanges: f.statusChanges,
		Notifications: NewNotificationService(f.notifications),
	})
	return f
}

func employee() *model.User {
	return &model.User{ID: "emp-1", FullName: "review bot", Role: domainauth.RoleEmployee}
}

func boolPtr(b bool) *bool { return &b }

func TestModerationService_ChangeJobActive_Activate(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", OwnerID: "owner-1", Title: "Backend Engineer", IsActive: false}, nil)
	f.jobs.EXPECT().SetActive(gomock.Any(), "job-1", true).Return(nil)
	f.statusChanges.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sc *model.StatusChange) (*model.StatusChange, error) {
			assert.Equal(t, "emp-1", sc.EmployeeID)
			assert.Equal(t, 0, sc.OldStatus)
			assert.Equal(t, 1, sc.NewStatus)
			assert.Equal(t, "looks legitimate", sc.Message)
			return sc, nil
		})
	f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *model.Notification) (*model.Notification, error) {
			assert.Equal(t, "owner-1", n.RecipientID)
			assert.Equal(t, model.NotificationTypeSystem, n.Type)
			assert.Contains(t, n.Message, "activated")
			return n, nil
		})

	job, err := f.svc.ChangeJobActive(ctx, employee(), model.ChangeJobActiveRequest{
		JobID:    "job-1",
		IsActive: boolPtr(true),
		Message:  "looks legitimate",
	})
	require.NoError(t, err)
	assert.True(t, job.IsActive)
}

func TestModerationService_ChangeJobActive_NoopStateRejected(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(
		&model.Job{ID: "job-1", IsActive: true}, nil)

	_, err := f.svc.ChangeJobActive(ctx, employee(), model.ChangeJobActiveRequest{
		JobID:    "job-1",
		IsActive: boolPtr(true),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestModerationService_ChangeJobActive_Validation(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	_, err := f.svc.ChangeJobActive(ctx, employee(), model.ChangeJobActiveRequest{JobID: "job-1"})
	assert.True(t, apperrors.IsValidation(err), "isActive is required")
}

func TestModerationService_Processed(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	f.statusChanges.EXPECT().ListByEmployee(gomock.Any(), "emp-1").Return(
		[]*model.StatusChange{{ID: "sc-1", EmployeeID: "emp-1"}}, nil)

	changes, err := f.svc.Processed(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestModerationService_ListJobs(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	f.jobs.EXPECT().List(gomock.Any(), 10, 0).Return([]*model.Job{{ID: "job-1"}}, nil)

	jobs, err := f.svc.ListJobs(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
