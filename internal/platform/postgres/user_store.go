package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// UserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type UserStore struct {
	db store.DBTX
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface.
func NewUserStore(db store.DBTX) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &UserStore{db: db}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx}
}

const userColumns = "id, username, email, role, hashed_password, is_validated"

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		id   int64
		user domain.User
	)
	if err := row.Scan(
		&id,
		&user.Username,
		&user.Email,
		&user.Role,
		&user.HashedPassword,
		&user.IsValidated,
	); err != nil {
		return nil, err
	}
	user.ID = formatID(id)
	return &user, nil
}

// GetAll implements store.UserStore.GetAll
func (s *UserStore) GetAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err, "user", "get_all", store.ErrUserNotFound, store.ErrEmailExists)
	}
	defer func() { _ = rows.Close() }()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "user", "get_all", store.ErrUserNotFound, store.ErrEmailExists)
	}

	return users, nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
// The returned user carries the password hash, never a plaintext password.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	numID, ok := parseID(id)
	if !ok {
		return nil, store.ErrUserNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, numID))
	if err != nil {
		return nil, mapError(err, "user", "get_by_id", store.ErrUserNotFound, store.ErrEmailExists)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "user", "get_by_email", store.ErrUserNotFound, store.ErrEmailExists)
	}

	return user, nil
}

// Add implements store.UserStore.Add
// The caller must have hashed the password already; plaintext never reaches
// the database. Returns store.ErrEmailExists on a duplicate email.
func (s *UserStore) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}

	query := `
		INSERT INTO users (username, email, role, hashed_password, is_validated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.Role,
		user.HashedPassword,
		user.IsValidated,
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "user", "add", store.ErrUserNotFound, store.ErrEmailExists)
	}

	persisted := *user
	persisted.ID = formatID(id)
	persisted.Password = ""
	return &persisted, nil
}

// Update implements store.UserStore.Update
// Last write wins. Returns store.ErrUserNotFound if the user does not exist
// and store.ErrEmailExists when updating to an email that is already taken.
func (s *UserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	numID, ok := parseID(user.ID)
	if !ok {
		return nil, store.ErrUserNotFound
	}

	query := `
		UPDATE users
		SET username = $1, email = $2, role = $3, hashed_password = $4, is_validated = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.Role,
		user.HashedPassword,
		user.IsValidated,
		numID,
	)
	if err != nil {
		return nil, mapError(err, "user", "update", store.ErrUserNotFound, store.ErrEmailExists)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// Paginate implements store.UserStore.Paginate
// Fails closed to an empty page when the database is unreachable.
func (s *UserStore) Paginate(ctx context.Context, page, pageSize int) (*store.Page[domain.User], error) {
	log := logger.FromContext(ctx)
	page, pageSize = normalizePageArgs(page, pageSize)

	failClosed := func(err error) (*store.Page[domain.User], error) {
		log.Warn("user pagination failed closed",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return store.EmptyPage[domain.User](page, pageSize), nil
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return failClosed(err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return failClosed(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.User, 0, pageSize)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		items = append(items, *user)
	}
	if err := rows.Err(); err != nil {
		return failClosed(err)
	}

	return offsetPage(items, page, pageSize, total), nil
}
