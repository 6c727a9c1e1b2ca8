package service

import (
	"context"
	"testing"

	"gamerecs/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBacklogAdd_Success(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	gameRepo.On("FindByID", mock.Anything, int64(6)).Return(&models.Game{ID: 6}, nil)
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(6)).Return(nil, notFound)
	backlogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.BacklogItem")).Return(nil)

	item, err := svc.Add(context.Background(), "user-1", 6, models.StatusToPlay)

	require.NoError(t, err)
	assert.Equal(t, models.StatusToPlay, item.Status)
	backlogRepo.AssertExpectations(t)
}

func TestBacklogAdd_AlreadyPresent(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	gameRepo.On("FindByID", mock.Anything, int64(6)).Return(&models.Game{ID: 6}, nil)
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(6)).
		Return(&models.BacklogItem{UserID: "user-1", GameID: 6}, nil)

	item, err := svc.Add(context.Background(), "user-1", 6, models.StatusToPlay)

	assert.ErrorIs(t, err, ErrAlreadyInBacklog)
	assert.Nil(t, item)
	backlogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBacklogAdd_GameMissing(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	gameRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, notFound)

	item, err := svc.Add(context.Background(), "user-1", 999, models.StatusToPlay)

	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.Nil(t, item)
}

func TestBacklogAdd_InvalidStatus(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	item, err := svc.Add(context.Background(), "user-1", 6, models.BacklogStatus("PAUSED"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, item)
}

func TestBacklogUpdateStatus_Success(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	existing := &models.BacklogItem{UserID: "user-1", GameID: 6, Status: models.StatusToPlay}
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(6)).Return(existing, nil)
	backlogRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.BacklogItem")).Return(nil)

	item, err := svc.UpdateStatus(context.Background(), "user-1", 6, models.StatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, item.Status)
}

func TestBacklogUpdateStatus_CompletedBackToToPlay(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	existing := &models.BacklogItem{UserID: "user-1", GameID: 6, Status: models.StatusCompleted}
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(6)).Return(existing, nil)

	item, err := svc.UpdateStatus(context.Background(), "user-1", 6, models.StatusToPlay)

	assert.ErrorIs(t, err, ErrBadTransition)
	assert.Nil(t, item)
	backlogRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBacklogUpdateStatus_NotInBacklog(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(6)).Return(nil, notFound)

	item, err := svc.UpdateStatus(context.Background(), "user-1", 6, models.StatusInProgress)

	assert.ErrorIs(t, err, ErrNotInBacklog)
	assert.Nil(t, item)
}

func TestBacklogBatchUpdate_BestEffort(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(1)).
		Return(&models.BacklogItem{UserID: "user-1", GameID: 1, Status: models.StatusToPlay}, nil)
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(2)).Return(nil, notFound)
	backlogRepo.On("FindByUserAndGame", mock.Anything, "user-1", int64(3)).
		Return(&models.BacklogItem{UserID: "user-1", GameID: 3, Status: models.StatusInProgress}, nil)
	backlogRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.BacklogItem")).Return(nil)

	updated, err := svc.BatchUpdateStatus(context.Background(), "user-1", []StatusUpdate{
		{GameID: 1, Status: models.StatusInProgress},
		{GameID: 2, Status: models.StatusInProgress}, // not in backlog, skipped
		{GameID: 3, Status: models.StatusCompleted},
	})

	require.NoError(t, err)
	// The failed item is dropped from the result; the short result set
	// is how callers detect partial application.
	require.Len(t, updated, 2)
	assert.Equal(t, int64(1), updated[0].GameID)
	assert.Equal(t, int64(3), updated[1].GameID)
}

func TestBacklogRemove_NotInBacklog(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	backlogRepo.On("Delete", mock.Anything, "user-1", int64(6)).Return(notFound)

	err := svc.Remove(context.Background(), "user-1", 6)

	assert.ErrorIs(t, err, ErrNotInBacklog)
}

func TestBacklogStats(t *testing.T) {
	backlogRepo := new(MockBacklogRepository)
	gameRepo := new(MockGameRepository)
	svc := NewBacklogService(backlogRepo, gameRepo, nil)

	backlogRepo.On("CountByUserAndStatus", mock.Anything, "user-1", models.StatusToPlay).Return(int64(3), nil)
	backlogRepo.On("CountByUserAndStatus", mock.Anything, "user-1", models.StatusInProgress).Return(int64(1), nil)
	backlogRepo.On("CountByUserAndStatus", mock.Anything, "user-1", models.StatusCompleted).Return(int64(7), nil)
	backlogRepo.On("CountByUserAndStatus", mock.Anything, "user-1", models.StatusAbandoned).Return(int64(0), nil)

	stats, err := svc.Stats(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats[models.StatusToPlay])
	assert.Equal(t, int64(1), stats[models.StatusInProgress])
	assert.Equal(t, int64(7), stats[models.StatusCompleted])
	assert.Equal(t, int64(0), stats[models.StatusAbandoned])
}
