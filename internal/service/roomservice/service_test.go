package roomservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/service/roomservice"
)

// MockRoomRepository é uma implementação mock da interface RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (domain.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Room), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func TestGetAllRooms_Success(t *testing.T) {
	mockRepo := new(MockRoomRepository)
	svc := roomservice.NewService(mockRepo, newTestLogger())

	expected := []domain.Room{{ID: "r1", Name: "Lab A"}, {ID: "r2", Name: "Lab B"}}
	mockRepo.On("FindAll", mock.Anything).Return(expected, nil)

	rooms, err := svc.GetAllRooms(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, rooms)
	mockRepo.AssertExpectations(t)
}

func TestGetRoomByID_EmptyID(t *testing.T) {
	mockRepo := new(MockRoomRepository)
	svc := roomservice.NewService(mockRepo, newTestLogger())

	_, err := svc.GetRoomByID(context.Background(), "")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetRoomByID_NotFound(t *testing.T) {
	mockRepo := new(MockRoomRepository)
	svc := roomservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, "missing").
		Return(domain.Room{}, apperror.NewNotFoundError("Sala com ID missing não existe."))

	_, err := svc.GetRoomByID(context.Background(), "missing")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}
