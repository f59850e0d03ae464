package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jordanlanch/leadmanager/pkg/auth"
	"github.com/jordanlanch/leadmanager/pkg/database"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// Service manages accounts that may sign in to the lead service
type Service struct {
	db  *database.Client
	now func() time.Time
}

// NewService creates a new user service
func NewService(db *database.Client) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. An email that is already taken is a conflict.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.exists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("User with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}

	query, args := s.db.Builder().Insert(database.UsersTable).
		Columns("id", "name", "email", "password_hash", "created_at").
		Values(user.ID, user.Name, user.Email, hash, s.now()).
		Query()
	if _, err := s.db.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords both come back as unauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	b := s.db.Builder()
	query, args := b.Select("id", "name", "email", "password_hash").
		From(b.Table(database.UsersTable)).
		Where(entsql.EQ("email", normalizeEmail(email))).
		Limit(1).
		Query()

	var (
		user models.User
		hash string
	)
	err := s.db.DB().QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Name, &user.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewUnauthorizedError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(hash, password) {
		return nil, domain.NewUnauthorizedError()
	}

	return &user, nil
}

// EnsureUser registers the account unless the email is already taken. The
// server uses it to provide the demo login.
func (s *Service) EnsureUser(ctx context.Context, req models.RegisterRequest) (created bool, err error) {
	if _, err := s.Register(ctx, req); err != nil {
		if domain.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) exists(ctx context.Context, email string) (bool, error) {
	b := s.db.Builder()
	query, args := b.Select().Count().
		From(b.Table(database.UsersTable)).
		Where(entsql.EQ("email", email)).
		Query()

	var n int
	if err := s.db.DB().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return n > 0, nil
}
