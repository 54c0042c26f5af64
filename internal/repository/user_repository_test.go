package repository_test

import (
	"context"
	"testing"

	"vibealong/internal/model"
	"vibealong/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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

func TestUserRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	user := &model.User{
		ID:             userID,
		Email:          "dev@example.com",
		HashedPassword: "hashed_password",
		Name:           "Dev User",
		Provider:       model.ProviderPassword,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectCommit()

	// Act
	err := userRepo.Create(context.Background(), user)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	err := userRepo.Create(context.Background(), &model.User{ID: uuid.New(), Email: "dup@example.com", Name: "Dup"})

	assert.ErrorIs(t, err, repository.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	email := "dev@example.com"

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "name", "provider", "subject", "created_at"}).
			AddRow(userID.String(), email, "hashed_password", "Dev User", "password", "", "2025-01-01 00:00:00"))

	// Act
	user, err := userRepo.FindByEmail(context.Background(), email)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, email, user.Email)
	assert.Equal(t, "Dev User", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT`).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := userRepo.FindByEmail(context.Background(), "nobody@example.com")

	// A missing user is not an error
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT`).
		WillReturnError(assert.AnError)

	user, err := userRepo.FindByEmail(context.Background(), "dev@example.com")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindBySubject(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE provider = .* AND subject = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "provider", "subject"}).
			AddRow(userID.String(), "coder@example.com", "Coder", "oauth", "sub-123"))

	user, err := userRepo.FindBySubject(context.Background(), "sub-123")

	assert.NoError(t, err)
	if assert.NotNil(t, user) {
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "sub-123", user.Subject)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
