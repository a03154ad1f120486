package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Gaur10/taskpilot/internal/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestTaskRepository_ListByTenant(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE tenant_id = .* ORDER BY created_at DESC`).
		WithArgs("tenant-test-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "owner_sub", "name", "status", "created_by_email", "created_by_name", "activity_log", "created_at", "updated_at"}).
			AddRow(taskID.String(), "tenant-test-a", "auth0|u1", "Buy milk", "todo", "mom@example.com", "Mom", `[]`, now, now))

	// Act
	tasks, err := taskRepo.ListByTenant(context.Background(), "tenant-test-a")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].ID)
	assert.Equal(t, "Buy milk", tasks[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .* AND tenant_id = .* LIMIT .*`).
		WithArgs(taskID, "tenant-test-a", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "status", "activity_log"}).
			AddRow(taskID.String(), "tenant-test-a", "Buy milk", "todo", `[]`))

	// Act
	task, err := taskRepo.GetByID(context.Background(), "tenant-test-a", taskID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, taskID, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_WrongTenantIsNotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .* AND tenant_id = .* LIMIT .*`).
		WithArgs(taskID, "tenant-test-b", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetByID(context.Background(), "tenant-test-b", taskID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_DBError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .* AND tenant_id = .* LIMIT .*`).
		WithArgs(taskID, "tenant-test-a", 1).
		WillReturnError(assert.AnError)

	// Act
	task, err := taskRepo.GetByID(context.Background(), "tenant-test-a", taskID)

	// Assert
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_Scoped(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .* AND tenant_id = .*`).
		WithArgs(taskID, "tenant-test-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), "tenant-test-a", taskID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .* AND tenant_id = .*`).
		WithArgs(taskID, "tenant-test-a").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), "tenant-test-a", taskID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
