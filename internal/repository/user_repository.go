package repository

import (
	"context"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// UserRepository is the dual-backend repository for user accounts.
//
// Authentication reads (GetByEmail) deliberately bypass the replica: the
// primary store is the uniqueness authority for emails, and a stale or
// partial replica must never decide a login.
type UserRepository struct {
	primary store.UserStore
	replica store.KVStore
}

// NewUserRepository creates a UserRepository. The replica may be nil, in
// which case every operation runs against the primary alone.
func NewUserRepository(primary store.UserStore, replica store.KVStore) *UserRepository {
	return &UserRepository{primary: primary, replica: replica}
}

// GetByID reads a user, preferring the replica and falling back to the
// primary on a miss, fault, or malformed item.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.replica != nil {
		if item, ok := r.replica.GetByID(ctx, id); ok {
			user, err := userFromItem(item)
			if err == nil {
				return user, nil
			}
			logger.FromContext(ctx).Warn("replica item malformed, falling back to primary",
				slog.String("entity", "user"), slog.String("id", id),
				slog.String("error", err.Error()))
		}
	}

	user, err := r.primary.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("primary read failed, treating as absent",
			slog.String("entity", "user"), slog.String("id", id),
			slog.String("error", err.Error()))
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// GetByEmail resolves a user by email against the primary store only.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.primary.GetByEmail(ctx, email)
}

// GetPaginated pages through users with offset semantics emulated on top of
// the replica: the table is small enough to scan in full, sort, and slice,
// which preserves a real total count. An empty scan means the replica is
// unseeded (or faulted), so the read redirects to the primary's offset
// pagination at the same page/pageSize.
func (r *UserRepository) GetPaginated(ctx context.Context, page, pageSize int) (*store.Page[domain.User], error) {
	page, pageSize = normalizePage(page, pageSize)

	if r.replica == nil {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	items, ok := r.replica.ScanAll(ctx)
	if !ok || len(items) == 0 {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	sortItemsByIDDesc(items)
	users := coerceUsers(ctx, items)

	total := len(users)
	startIdx := (page - 1) * pageSize
	if startIdx >= total {
		empty := store.EmptyPage[domain.User](page, pageSize)
		empty.TotalCount = &total
		empty.HasPrev = page > 1
		return empty, nil
	}

	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}

	return &store.Page[domain.User]{
		Items:      users[startIdx:endIdx],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &total,
		HasNext:    endIdx < total,
		HasPrev:    page > 1,
	}, nil
}

// Add persists a user to the primary store, which enforces email uniqueness
// and assigns identity, then mirrors the account to the replica best effort.
// The mirrored item carries the password hash, never a plaintext password.
func (r *UserRepository) Add(ctx context.Context, user *domain.User) (*domain.User, store.ReplicaSync, error) {
	created, err := r.primary.Add(ctx, user)
	if err != nil {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, err
	}
	return created, r.mirror(ctx, created), nil
}

// Update modifies a user in the primary store only.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.primary.Update(ctx, user)
}

func (r *UserRepository) mirror(ctx context.Context, user *domain.User) store.ReplicaSync {
	if r.replica == nil {
		return store.ReplicaSync{Status: store.SyncSkipped}
	}
	if !r.replica.Put(ctx, userItem(user)) {
		logger.FromContext(ctx).Warn("replica write failed, stores diverged",
			slog.String("entity", "user"), slog.String("id", user.ID))
		return store.ReplicaSync{Status: store.SyncFailed}
	}
	return store.ReplicaSync{Status: store.SyncOK}
}

func coerceUsers(ctx context.Context, items []store.Item) []domain.User {
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		user, err := userFromItem(item)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping malformed replica item",
				slog.String("entity", "user"), slog.String("error", err.Error()))
			continue
		}
		users = append(users, *user)
	}
	return users
}
