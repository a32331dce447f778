package admin

import (
	"context"
	"strings"
	"time"

	"moderation-controlplane/internal/config"
	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/pkg/security"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const tokenBytes = 32

// DefaultSessionTTL is the forward expiry applied to minted sessions when no
// TTL is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Service manages admin credentials and session tokens.
type Service struct {
	users      UserRepository
	sessions   SessionRepository
	sessionTTL time.Duration
	logger     *zap.Logger
	node       *snowflake.Node
	now        func() time.Time
}

// ServiceParams defines dependencies for Service construction.
type ServiceParams struct {
	fx.In

	Users    UserRepository
	Sessions SessionRepository
	Config   *config.Config
	Logger   *zap.Logger
	Node     *snowflake.Node
}

// NewService constructs a new Service instance.
func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := DefaultSessionTTL
	if p.Config != nil && p.Config.Session.TTL > 0 {
		ttl = p.Config.Session.TTL
	}
	return &Service{
		users:      p.Users,
		sessions:   p.Sessions,
		sessionTTL: ttl,
		logger:     logger,
		node:       p.Node,
		now:        time.Now,
	}
}

// Login verifies a username/password pair and mints a fixed-duration session.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to look up admin user", zap.Error(err))
		return nil, errutil.Internal("failed to log in", errutil.WithErr(err))
	}
	if user == nil || !security.VerifyArgon2(password, user.PasswordHash) {
		return nil, errutil.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, errutil.Forbidden("user disabled")
	}

	token, err := security.GenerateBase64Secret(tokenBytes)
	if err != nil {
		return nil, errutil.Internal("failed to generate session token", errutil.WithErr(err))
	}

	now := s.now().UTC()
	session := &Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("failed to persist session", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errutil.Internal("failed to log in", errutil.WithErr(err))
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update last_login", zap.String("user_id", user.ID), zap.Error(err))
	}

	return session, nil
}

// Authenticate resolves a bearer token to its active admin user. This is the
// single authorization gate: when allowed roles are supplied, the user's role
// must be among them.
func (s *Service) Authenticate(ctx context.Context, token string, allowedRoles ...Role) (*User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		s.logger.Error("failed to look up session", zap.Error(err))
		return nil, errutil.Internal("failed to authenticate admin", errutil.WithErr(err))
	}
	if session == nil || !session.ValidAt(s.now().UTC()) {
		return nil, errutil.Unauthorized("invalid admin token")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("failed to load session user", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, errutil.Internal("failed to authenticate admin", errutil.WithErr(err))
	}
	if user == nil {
		return nil, errutil.Unauthorized("invalid admin token")
	}
	if !user.IsActive {
		return nil, errutil.Forbidden("inactive user")
	}

	if len(allowedRoles) > 0 {
		allowed := false
		for _, role := range allowedRoles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, errutil.Forbidden("insufficient permissions")
		}
	}

	return user, nil
}

// CreateUserInput carries the fields required to register an admin user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     Role
}

// CreateUser registers a new admin user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, errutil.ValidationFailed("username is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errutil.ValidationFailed("email is required")
	}
	if in.Password == "" {
		return nil, errutil.ValidationFailed("password is required")
	}
	if in.Role == "" {
		in.Role = RoleContentModerator
	}
	if !in.Role.Valid() {
		return nil, errutil.ValidationFailed("unknown role")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		s.logger.Error("failed to check existing admin user", zap.Error(err))
		return nil, errutil.Internal("failed to create user", errutil.WithErr(err))
	}
	if exists {
		return nil, errutil.Conflict("username or email already exists")
	}

	hash, err := security.HashArgon2(in.Password)
	if err != nil {
		return nil, errutil.Internal("failed to hash password", errutil.WithErr(err))
	}

	user := &User{
		ID:           s.node.Generate().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create admin user", zap.Error(err))
		return nil, errutil.Internal("failed to create user", errutil.WithErr(err))
	}

	return user, nil
}

// ListUsers returns all admin users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list admin users", zap.Error(err))
		return nil, errutil.Internal("failed to list users", errutil.WithErr(err))
	}
	return users, nil
}

// CleanupExpiredSessions removes sessions whose expiry has passed. Reads
// treat expired sessions as absent; this keeps the table from growing.
func (s *Service) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now().UTC())
}
