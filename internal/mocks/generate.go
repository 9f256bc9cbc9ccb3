// Package mocks provides mock implementations for testing the jobfinder API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mocks for the repository interfaces from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=repositories_mock.go github.com/jobfinder/jobfinder-api/internal/core UserRepository,ProfileRepository,JobRepository,ApplicationRepository,NotificationRepository,StatusChangeRepository
