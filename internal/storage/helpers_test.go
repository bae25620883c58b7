package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/adminstudio/internal/migrations"
	"github.com/magabrotheeeer/adminstudio/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() || os.Getenv("SKIP_DB_TESTS") == "true" {
		t.Skip("skipping PostgreSQL integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	t.Cleanup(func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return storage
}

// TestDataFactory создаёт связанные тестовые данные.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateAccount создает учётную запись с уникальным email.
func (f *TestDataFactory) CreateAccount(t *testing.T) *models.Account {
	t.Helper()
	email := uuid.NewString()[:8] + "@example.com"
	a, err := f.storage.CreateAccount(context.Background(), models.Account{
		Email:        email,
		Username:     email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return a
}

// CreateProfile создает профиль роли для новой учётной записи.
func (f *TestDataFactory) CreateProfile(t *testing.T, role models.Role) *models.Profile {
	t.Helper()
	a := f.CreateAccount(t)
	p, err := f.storage.CreateProfile(context.Background(), role, a.ID)
	require.NoError(t, err)
	p.Account = a
	return p
}

// CreateRoom создает студию и зал в ней.
func (f *TestDataFactory) CreateRoom(t *testing.T, name string) *models.Room {
	t.Helper()
	ctx := context.Background()
	st, err := f.storage.CreateStudio(ctx, models.Studio{Name: "Studio " + name, Address: "Main st. 1"})
	require.NoError(t, err)
	r, err := f.storage.CreateRoom(ctx, models.Room{StudioID: st.ID, Name: name, Capacity: 12})
	require.NoError(t, err)
	return r
}

// CreateSchedule создает занятие с новым инструктором и залом.
func (f *TestDataFactory) CreateSchedule(t *testing.T, start time.Time) *models.Schedule {
	t.Helper()
	instructor := f.CreateProfile(t, models.RoleInstructor)
	room := f.CreateRoom(t, "Room A")
	sc, err := f.storage.CreateSchedule(context.Background(), models.Schedule{
		InstructorID:    instructor.ID,
		RoomID:          room.ID,
		StartTime:       start,
		DurationMinutes: models.DefaultDurationMinutes,
		Status:          models.ScheduleScheduled,
	})
	require.NoError(t, err)
	return sc
}
