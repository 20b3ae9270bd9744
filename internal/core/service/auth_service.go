package service

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/credentials"
	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

// AuthService implements registration, login/logout and session checks. A
// login issues a signed token and stores its signature segment; the session
// lives exactly as long as that row.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRepository
	hasher    *credentials.Hasher
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, hasher *credentials.Hasher, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// tokenClaims is the payload of an issued token. The embedded user lets the
// HTTP layer rebuild the caller without a database read; the session row
// still decides whether the token is live.
type tokenClaims struct {
	Name  string                  `json:"name"`
	Email string                  `json:"email"`
	Roles []domain.RoleAssignment `json:"roles"`
	jwt.RegisteredClaims
}

// Register creates the account and logs it in. Self-registration never
// carries privileges: whatever roles arrive on the request, the account
// starts with exactly one diner grant. Privileged grants only exist through
// the admin seed or an existing admin.
func (s *AuthService) Register(ctx context.Context, user *domain.User, password string) (*domain.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hash
	user.Roles = []domain.RoleAssignment{domain.DinerRole()}

	created, err := s.users.Add(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, created)
	if err != nil {
		return nil, "", err
	}
	s.log.Info().Int64("userId", created.ID).Msg("user registered")
	return created, token, nil
}

// Login verifies the credentials. An unknown email and a wrong password are
// indistinguishable to the caller: both return domain.ErrUnknownUser.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrUnknownUser
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrUnknownUser
	}
	user.PasswordHash = ""

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the presented token's session. Revoking a session that was
// never created, or already revoked, is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, domain.TokenSignature(token))
}

// Authenticate resolves a token to its user. The token must verify against
// the service secret and its signature must still have a session row.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	active, err := s.sessions.Exists(ctx, domain.TokenSignature(token))
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &domain.User{
		ID:    userID,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}

// UpdateUser applies a partial update: empty fields stay unchanged, a
// supplied password is re-hashed. With neither field it is a read.
func (s *AuthService) UpdateUser(ctx context.Context, userID int64, email, password string) (*domain.User, error) {
	hash := ""
	if password != "" {
		var err error
		if hash, err = s.hasher.Hash(password); err != nil {
			return nil, err
		}
	}
	return s.users.Update(ctx, userID, email, hash)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, domain.TokenSignature(token), user.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := tokenClaims{
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(user.ID, 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
