package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/credentials"
	"github.com/pizzahub/pizza-service/internal/core/domain"
)

type stubUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.RoleAssignment(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Add(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored

	out := cloneUser(stored)
	out.PasswordHash = ""
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUnknownUser
}

func (r *stubUserRepo) Update(_ context.Context, userID int64, email, passwordHash string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUnknownUser
	}
	if email != "" {
		u.Email = email
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

type stubSessionRepo struct {
	sessions map[string]int64
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]int64)}
}

func (r *stubSessionRepo) Create(_ context.Context, signature string, userID int64) error {
	r.sessions[signature] = userID
	return nil
}

func (r *stubSessionRepo) Exists(_ context.Context, signature string) (bool, error) {
	_, ok := r.sessions[signature]
	return ok, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, signature string) error {
	delete(r.sessions, signature)
	return nil
}

func newAuthService(users *stubUserRepo, sessions *stubSessionRepo) *AuthService {
	return NewAuthService(users, sessions, credentials.NewHasher(4), "secret", zerolog.Nop())
}

func TestAuthService_Register_DefaultsDinerRole(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := newAuthService(users, sessions)

	user, token, err := svc.Register(context.Background(), &domain.User{Name: "alice", Email: "alice@test.com"}, "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if len(user.Roles) != 1 || user.Roles[0].Role != domain.RoleDiner {
		t.Fatalf("expected a single diner role, got %+v", user.Roles)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped from response")
	}

	stored := users.users[user.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "pass123" {
		t.Fatalf("expected stored password to be hashed, got %q", stored.PasswordHash)
	}
	if active, _ := sessions.Exists(context.Background(), domain.TokenSignature(token)); !active {
		t.Fatalf("expected register to open a session")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionRepo())

	if _, _, err := svc.Register(context.Background(), &domain.User{Name: "bob", Email: "bob@test.com"}, "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), &domain.User{Name: "bob2", Email: "bob@test.com"}, "pass2"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newAuthService(newStubUserRepo(), sessions)

	if _, _, err := svc.Register(context.Background(), &domain.User{Name: "carol", Email: "carol@test.com"}, "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "carol@test.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected password hash to be cleared, got %q", user.PasswordHash)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if active, _ := sessions.Exists(context.Background(), domain.TokenSignature(token)); !active {
		t.Fatalf("expected login to open a session")
	}
}

// Credential failures must not reveal whether the account exists: wrong
// password and unknown email return the identical sentinel.
func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionRepo())

	if _, _, err := svc.Register(context.Background(), &domain.User{Name: "dave", Email: "dave@test.com"}, "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, badPass := svc.Login(context.Background(), "dave@test.com", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost@test.com", "whatever")

	if !errors.Is(badPass, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser for wrong password, got %v", badPass)
	}
	if !errors.Is(noUser, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser for unknown email, got %v", noUser)
	}
	if badPass.Error() != noUser.Error() {
		t.Fatalf("failure modes distinguishable: %q vs %q", badPass, noUser)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newAuthService(newStubUserRepo(), sessions)

	_, token, err := svc.Register(context.Background(), &domain.User{Name: "erin", Email: "erin@test.com"}, "pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("authenticate before logout failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}

	// Revoking an already revoked session is a no-op.
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout returned error: %v", err)
	}
}

func TestAuthService_Authenticate_RejectsForeignToken(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionRepo())

	other := NewAuthService(newStubUserRepo(), newStubSessionRepo(), credentials.NewHasher(4), "other-secret", zerolog.Nop())
	_, token, err := other.Register(context.Background(), &domain.User{Name: "mallory", Email: "mallory@test.com"}, "pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign token, got %v", err)
	}
}

// Registration with requested roles must not grant them: the account comes
// out as a plain diner and its token opens no admin gate.
func TestAuthService_Register_IgnoresRequestedRoles(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubSessionRepo())

	user, token, err := svc.Register(context.Background(), &domain.User{
		Name:  "eve",
		Email: "eve@test.com",
		Roles: []domain.RoleAssignment{domain.AdminRole(), domain.FranchiseeRole(3)},
	}, "pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if len(user.Roles) != 1 || user.Roles[0].Role != domain.RoleDiner {
		t.Fatalf("expected exactly one diner grant, got %+v", user.Roles)
	}
	stored := users.users[user.ID]
	if len(stored.Roles) != 1 || stored.Roles[0].Role != domain.RoleDiner {
		t.Fatalf("requested roles reached the store: %+v", stored.Roles)
	}

	resolved, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resolved.IsRole(domain.RoleAdmin) || resolved.IsFranchiseAdmin(3) {
		t.Fatalf("self-registered token carries privileges: %+v", resolved.Roles)
	}
}

func TestAuthService_Authenticate_RebuildsUserFromClaims(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubSessionRepo())

	// Seed a privileged account the way bootstrap does, outside Register.
	hash, err := credentials.NewHasher(4).Hash("pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	seeded, err := users.Add(context.Background(), &domain.User{
		Name:         "frank",
		Email:        "frank@test.com",
		PasswordHash: hash,
		Roles:        []domain.RoleAssignment{domain.AdminRole()},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, token, err := svc.Login(context.Background(), "frank@test.com", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != seeded.ID || user.Email != "frank@test.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !user.IsRole(domain.RoleAdmin) {
		t.Fatalf("expected admin role to survive the round trip")
	}
}

func TestAuthService_UpdateUser_Partial(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubSessionRepo())

	registered, _, err := svc.Register(context.Background(), &domain.User{Name: "grace", Email: "grace@test.com"}, "oldpass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldHash := users.users[registered.ID].PasswordHash

	// Email only: the stored hash must not move.
	updated, err := svc.UpdateUser(context.Background(), registered.ID, "grace@new.com", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "grace@new.com" {
		t.Fatalf("expected updated email, got %q", updated.Email)
	}
	if users.users[registered.ID].PasswordHash != oldHash {
		t.Fatalf("email-only update changed the password hash")
	}

	// Password only: the hash changes, the email stays.
	if _, err := svc.UpdateUser(context.Background(), registered.ID, "", "newpass"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored := users.users[registered.ID]
	if stored.PasswordHash == oldHash {
		t.Fatalf("password update did not re-hash")
	}
	if stored.Email != "grace@new.com" {
		t.Fatalf("password-only update changed the email")
	}

	if _, err := svc.UpdateUser(context.Background(), 9999, "x@test.com", ""); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser for missing user, got %v", err)
	}
}
