package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// UserRepository persists accounts and role assignments in the user and
// userRole tables.
type UserRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (r *UserRepository) Add(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user (name, email, password) VALUES (?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	roles := make([]domain.RoleAssignment, 0, len(user.Roles))
	for _, ra := range user.Roles {
		stored := domain.RoleAssignment{Role: ra.Role}
		if ra.Role == domain.RoleFranchisee {
			franchiseID := ra.ObjectID
			if franchiseID == 0 {
				franchiseID, err = r.franchiseIDByName(ctx, ra.Object)
				if err != nil {
					return nil, err
				}
			}
			stored = domain.FranchiseeRole(franchiseID)
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)`,
			userID, stored.Role, stored.ObjectID,
		)
		if err != nil {
			return nil, fmt.Errorf("insert role: %w", err)
		}
		roles = append(roles, stored)
	}

	r.log.Debug().Int64("userId", userID).Str("email", user.Email).Msg("user added")
	return &domain.User{ID: userID, Name: user.Name, Email: user.Email, Roles: roles}, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM user WHERE email=?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	if user.Roles, err = r.rolesOf(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. Both fields are bound as placeholders;
// the SET clause is assembled from fixed strings only.
func (r *UserRepository) Update(ctx context.Context, userID int64, email, passwordHash string) (*domain.User, error) {
	query, args := buildUserUpdate(userID, email, passwordHash)
	if query != "" {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			if isDuplicate(err) {
				return nil, domain.ErrEmailTaken
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
		r.log.Debug().Int64("userId", userID).Msg("user updated")
	}
	return r.findByID(ctx, userID)
}

func buildUserUpdate(userID int64, email, passwordHash string) (string, []any) {
	set := ""
	args := []any{}
	if passwordHash != "" {
		set = "password=?"
		args = append(args, passwordHash)
	}
	if email != "" {
		if set != "" {
			set += ", "
		}
		set += "email=?"
		args = append(args, email)
	}
	if set == "" {
		return "", nil
	}
	return "UPDATE user SET " + set + " WHERE id=?", append(args, userID)
}

func (r *UserRepository) findByID(ctx context.Context, userID int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email FROM user WHERE id=?`, userID,
	).Scan(&user.ID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	if user.Roles, err = r.rolesOf(ctx, userID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) rolesOf(ctx context.Context, userID int64) ([]domain.RoleAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, objectId FROM userRole WHERE userId=?`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.RoleAssignment
	for rows.Next() {
		var (
			role     domain.Role
			objectID int64
		)
		if err := rows.Scan(&role, &objectID); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if role == domain.RoleFranchisee {
			roles = append(roles, domain.FranchiseeRole(objectID))
		} else {
			roles = append(roles, domain.RoleAssignment{Role: role})
		}
	}
	return roles, rows.Err()
}

func (r *UserRepository) franchiseIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM franchise WHERE name=?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrFranchiseNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select franchise: %w", err)
	}
	return id, nil
}
