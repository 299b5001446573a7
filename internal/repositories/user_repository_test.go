package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
)

func sampleUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Name:     "Dewi Lestari",
		Email:    "dewi@example.com",
		Role:     models.RoleUser,
		Password: "$2a$10$hashhashhashhashhashha",
	}
}

func userRows(u *models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at", "updated_at"}).
		AddRow(u.ID, u.Name, u.Email, u.Role, u.Password, now, now)
}

func TestUserRepository_CreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewUserRepo(db)
		user := sampleUser()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO users \(id, name, email, role, password_hash\)`).
			WithArgs(user.ID, user.Name, user.Email, user.Role, user.Password).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err = repo.CreateUser(t.Context(), user)

		require.NoError(t, err)
		assert.Equal(t, now, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewUserRepo(db)
		user := sampleUser()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.ID, user.Name, user.Email, user.Role, user.Password).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err = repo.CreateUser(t.Context(), user)

		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err, "users_email_key"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewUserRepo(db)
		user := sampleUser()

		mock.ExpectQuery(`SELECT id, name, email, role, password_hash, created_at, updated_at FROM users WHERE email = \$1`).
			WithArgs(user.Email).
			WillReturnRows(userRows(user, time.Now()))

		found, err := repo.GetUserByEmail(t.Context(), user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.Password, found.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(`SELECT id, name, email, role, password_hash, created_at, updated_at FROM users WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		found, err := repo.GetUserByEmail(t.Context(), "nobody@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	user := sampleUser()

	mock.ExpectQuery(`SELECT id, name, email, role, password_hash, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs(user.ID).
		WillReturnRows(userRows(user, time.Now()))

	found, err := repo.GetUserByID(t.Context(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
