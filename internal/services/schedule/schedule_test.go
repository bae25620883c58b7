package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adminstudio/internal/cache"
	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateStudio(ctx context.Context, studio models.Studio) (*models.Studio, error) {
	args := m.Called(ctx, studio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Studio), args.Error(1)
}

func (m *RepoMock) GetStudio(ctx context.Context, id string) (*models.Studio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Studio), args.Error(1)
}

func (m *RepoMock) ListStudios(ctx context.Context) ([]*models.Studio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Studio), args.Error(1)
}

func (m *RepoMock) CreateRoom(ctx context.Context, room models.Room) (*models.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *RepoMock) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *RepoMock) ListRooms(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *RepoMock) CreateSchedule(ctx context.Context, sc models.Schedule) (*models.Schedule, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

func (m *RepoMock) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

func (m *RepoMock) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]*models.Schedule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Schedule), args.Error(1)
}

func (m *RepoMock) GetProfile(ctx context.Context, role models.Role, id string) (*models.Profile, error) {
	args := m.Called(ctx, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func setupCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return &cache.Cache{Db: client}, mr
}

func TestService_Create(t *testing.T) {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      models.Schedule
		setupMocks func(r *RepoMock)
		wantReason string
		wantErr    error
	}{
		{
			name:  "draft by default",
			input: models.Schedule{InstructorID: "ins-1", RoomID: "room-1", StartTime: start, DurationMinutes: 45},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfile", mock.Anything, models.RoleInstructor, "ins-1").Return(&models.Profile{ID: "ins-1"}, nil).Once()
				r.On("GetRoom", mock.Anything, "room-1").Return(&models.Room{ID: "room-1"}, nil).Once()
				r.On("CreateSchedule", mock.Anything, models.Schedule{
					InstructorID: "ins-1", RoomID: "room-1", StartTime: start, DurationMinutes: 45, Status: models.ScheduleDraft,
				}).Return(&models.Schedule{ID: "sch-1", Status: models.ScheduleDraft}, nil).Once()
			},
		},
		{
			name:       "invalid status",
			input:      models.Schedule{InstructorID: "ins-1", RoomID: "room-1", DurationMinutes: 45, Status: "postponed"},
			setupMocks: func(r *RepoMock) {},
			wantReason: "Invalid schedule status.",
		},
		{
			name:       "non positive duration",
			input:      models.Schedule{InstructorID: "ins-1", RoomID: "room-1", DurationMinutes: 0, Status: models.ScheduleScheduled},
			setupMocks: func(r *RepoMock) {},
			wantReason: "duration_minutes must be a positive integer.",
		},
		{
			name:  "unknown instructor",
			input: models.Schedule{InstructorID: "ins-x", RoomID: "room-1", DurationMinutes: 30},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfile", mock.Anything, models.RoleInstructor, "ins-x").Return(nil, models.ErrNotFound).Once()
			},
			wantReason: "Instructor does not exist.",
		},
		{
			name:  "unknown room",
			input: models.Schedule{InstructorID: "ins-1", RoomID: "room-x", DurationMinutes: 30},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfile", mock.Anything, models.RoleInstructor, "ins-1").Return(&models.Profile{ID: "ins-1"}, nil).Once()
				r.On("GetRoom", mock.Anything, "room-x").Return(nil, models.ErrNotFound).Once()
			},
			wantReason: "Room does not exist.",
		},
		{
			name:  "storage failure",
			input: models.Schedule{InstructorID: "ins-1", RoomID: "room-1", DurationMinutes: 30},
			setupMocks: func(r *RepoMock) {
				r.On("GetProfile", mock.Anything, models.RoleInstructor, "ins-1").Return(nil, errors.New("db down")).Once()
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			c, _ := setupCache(t)

			sc, err := New(repo, c, time.Minute, sl.Discard()).Create(context.Background(), tt.input)
			switch {
			case tt.wantReason != "":
				var inputErr *models.InputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, tt.wantReason, inputErr.Reason)
				assert.ErrorIs(t, err, models.ErrInvalidInput)
				repo.AssertNotCalled(t, "CreateSchedule", mock.Anything, mock.Anything)
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			default:
				require.NoError(t, err)
				assert.Equal(t, "sch-1", sc.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Get_ReadThrough(t *testing.T) {
	repo := new(RepoMock)
	c, mr := setupCache(t)
	stored := &models.Schedule{ID: "sch-1", RoomID: "room-1", DurationMinutes: 45, Status: models.ScheduleScheduled,
		StartTime: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	repo.On("GetSchedule", mock.Anything, "sch-1").Return(stored, nil).Twice()

	s := New(repo, c, time.Minute, sl.Discard())

	first, err := s.Get(context.Background(), "sch-1")
	require.NoError(t, err)
	assert.Equal(t, stored, first)
	assert.True(t, mr.Exists("schedule:sch-1"))

	second, err := s.Get(context.Background(), "sch-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, second.ID)
	assert.True(t, stored.StartTime.Equal(second.StartTime))
	repo.AssertNumberOfCalls(t, "GetSchedule", 1)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(context.Background(), "sch-1")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetSchedule", 2)
}

func TestService_Get_NotFoundIsNotCached(t *testing.T) {
	repo := new(RepoMock)
	c, mr := setupCache(t)
	repo.On("GetSchedule", mock.Anything, "missing").Return(nil, models.ErrNotFound).Once()

	_, err := New(repo, c, time.Minute, sl.Discard()).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, mr.Exists("schedule:missing"))
}

func TestService_Get_CacheUnavailable(t *testing.T) {
	repo := new(RepoMock)
	c, mr := setupCache(t)
	mr.Close()
	repo.On("GetSchedule", mock.Anything, "sch-1").Return(&models.Schedule{ID: "sch-1"}, nil).Once()

	sc, err := New(repo, c, time.Minute, sl.Discard()).Get(context.Background(), "sch-1")
	require.NoError(t, err)
	assert.Equal(t, "sch-1", sc.ID)
}

func TestService_CreateRoom(t *testing.T) {
	t.Run("studio must exist", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetStudio", mock.Anything, "st-x").Return(nil, models.ErrNotFound).Once()
		c, _ := setupCache(t)

		_, err := New(repo, c, time.Minute, sl.Discard()).CreateRoom(context.Background(),
			models.Room{StudioID: "st-x", Name: "Hall", Capacity: 10})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		repo := new(RepoMock)
		c, _ := setupCache(t)

		_, err := New(repo, c, time.Minute, sl.Discard()).CreateRoom(context.Background(),
			models.Room{StudioID: "st-1", Name: "Hall", Capacity: 0})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("created", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetStudio", mock.Anything, "st-1").Return(&models.Studio{ID: "st-1"}, nil).Once()
		repo.On("CreateRoom", mock.Anything, models.Room{StudioID: "st-1", Name: "Hall", Capacity: 10, IsActive: true}).
			Return(&models.Room{ID: "room-1", StudioID: "st-1", Name: "Hall", Capacity: 10, IsActive: true}, nil).Once()
		c, _ := setupCache(t)

		room, err := New(repo, c, time.Minute, sl.Discard()).CreateRoom(context.Background(),
			models.Room{StudioID: "st-1", Name: " Hall ", Capacity: 10, IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, "room-1", room.ID)
	})
}

func TestService_CreateStudio_RequiresName(t *testing.T) {
	repo := new(RepoMock)
	c, _ := setupCache(t)

	_, err := New(repo, c, time.Minute, sl.Discard()).CreateStudio(context.Background(), models.Studio{Name: "  "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateStudio", mock.Anything, mock.Anything)
}
