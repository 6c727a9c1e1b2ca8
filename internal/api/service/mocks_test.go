package service

import (
	"context"

	"gamerecs/internal/api/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindAllByUserOrderedByValue(ctx context.Context, userID string) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindPageByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Rating, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) FindPageByGame(ctx context.Context, gameID int64, page, pageSize int) ([]models.Rating, int64, error) {
	args := m.Called(ctx, gameID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, userID string, gameID int64) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteAllByGame(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockRatingRepository) CountByGame(ctx context.Context, gameID int64) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) AverageByGame(ctx context.Context, gameID int64) (*float64, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

// MockGameRepository mocks the GameRepository interface
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Update(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) FindByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	args := m.Called(ctx, igdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) ExistsByIGDBID(ctx context.Context, igdbID int64) (bool, error) {
	args := m.Called(ctx, igdbID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, title, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) FindByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, genre, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) FindByPlatform(ctx context.Context, platform string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, platform, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) FindByDeveloper(ctx context.Context, developer string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, developer, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBacklogRepository mocks the BacklogRepository interface
type MockBacklogRepository struct {
	mock.Mock
}

func (m *MockBacklogRepository) Create(ctx context.Context, item *models.BacklogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBacklogRepository) Save(ctx context.Context, item *models.BacklogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBacklogRepository) Delete(ctx context.Context, userID string, gameID int64) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}

func (m *MockBacklogRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.BacklogItem, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacklogItem), args.Error(1)
}

func (m *MockBacklogRepository) FindPageByUser(ctx context.Context, userID string, status *models.BacklogStatus, page, pageSize int) ([]models.BacklogItem, int64, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.BacklogItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockBacklogRepository) CountByUserAndStatus(ctx context.Context, userID string, status models.BacklogStatus) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

// notFound is shorthand for the gorm miss every repo returns.
var notFound = gorm.ErrRecordNotFound
