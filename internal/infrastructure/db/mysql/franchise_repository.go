package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// FranchiseRepository persists franchises, their stores and the franchisee
// grants binding users to them.
type FranchiseRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewFranchiseRepository(db *sql.DB, log zerolog.Logger) *FranchiseRepository {
	return &FranchiseRepository{db: db, log: log}
}

func (r *FranchiseRepository) ListSummaries(ctx context.Context) ([]*domain.Franchise, error) {
	franchises, err := r.listBare(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range franchises {
		if f.Stores, err = r.bareStores(ctx, f.ID); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (r *FranchiseRepository) ListDetailed(ctx context.Context) ([]*domain.Franchise, error) {
	franchises, err := r.listBare(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range franchises {
		if err := r.fill(ctx, f); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (r *FranchiseRepository) Get(ctx context.Context, franchiseID int64) (*domain.Franchise, error) {
	f := &domain.Franchise{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM franchise WHERE id=?`, franchiseID,
	).Scan(&f.ID, &f.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFranchiseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select franchise: %w", err)
	}
	if err := r.fill(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FranchiseRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Franchise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT objectId FROM userRole WHERE role=? AND userId=?`, domain.RoleFranchisee, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select grants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	franchises := []*domain.Franchise{}
	for _, id := range ids {
		f, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrFranchiseNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		franchises = append(franchises, f)
	}
	return franchises, nil
}

func (r *FranchiseRepository) Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	// Resolve every admin email before touching the franchise table so an
	// unknown email fails the whole create.
	admins := make([]domain.FranchiseAdmin, len(franchise.Admins))
	for i, admin := range franchise.Admins {
		resolved := admin
		err := r.db.QueryRowContext(ctx,
			`SELECT id, name FROM user WHERE email=?`, admin.Email,
		).Scan(&resolved.ID, &resolved.Name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.UnknownFranchiseAdmin(admin.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("select admin: %w", err)
		}
		admins[i] = resolved
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO franchise (name) VALUES (?)`, franchise.Name)
	if err != nil {
		return nil, fmt.Errorf("insert franchise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert franchise: %w", err)
	}

	for _, admin := range admins {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)`,
			admin.ID, domain.RoleFranchisee, id,
		)
		if err != nil {
			return nil, fmt.Errorf("insert grant: %w", err)
		}
	}

	r.log.Info().Int64("franchiseId", id).Str("name", franchise.Name).Msg("franchise created")
	return &domain.Franchise{ID: id, Name: franchise.Name, Admins: admins, Stores: []domain.Store{}}, nil
}

// Delete removes stores, franchisee grants and the franchise row as one
// transaction. Stores go first because of the foreign key, grants next, the
// franchise last. Any failure rolls the whole unit back.
func (r *FranchiseRepository) Delete(ctx context.Context, franchiseID int64) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM store WHERE franchiseId=?`, franchiseID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM userRole WHERE objectId=?`, franchiseID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM franchise WHERE id=?`, franchiseID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		r.log.Error().Err(err).Int64("franchiseId", franchiseID).Msg("franchise delete rolled back")
		return domain.ErrFranchiseDelete
	}
	return nil
}

func (r *FranchiseRepository) CreateStore(ctx context.Context, franchiseID int64, store *domain.Store) (*domain.Store, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO store (franchiseId, name) VALUES (?, ?)`, franchiseID, store.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return &domain.Store{ID: id, FranchiseID: franchiseID, Name: store.Name}, nil
}

func (r *FranchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM store WHERE franchiseId=? AND id=?`, franchiseID, storeID,
	)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (r *FranchiseRepository) listBare(ctx context.Context) ([]*domain.Franchise, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM franchise`)
	if err != nil {
		return nil, fmt.Errorf("select franchises: %w", err)
	}
	defer rows.Close()

	franchises := []*domain.Franchise{}
	for rows.Next() {
		f := &domain.Franchise{}
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan franchise: %w", err)
		}
		franchises = append(franchises, f)
	}
	return franchises, rows.Err()
}

func (r *FranchiseRepository) bareStores(ctx context.Context, franchiseID int64) ([]domain.Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM store WHERE franchiseId=?`, franchiseID,
	)
	if err != nil {
		return nil, fmt.Errorf("select stores: %w", err)
	}
	defer rows.Close()

	stores := []domain.Store{}
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// fill loads the privileged shape: the admin list and per-store revenue. The
// right join keeps stores with no orders in the result at zero revenue.
func (r *FranchiseRepository) fill(ctx context.Context, f *domain.Franchise) error {
	adminRows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email
		 FROM userRole AS ur
		 JOIN user AS u ON u.id=ur.userId
		 WHERE ur.objectId=? AND ur.role=?`, f.ID, domain.RoleFranchisee,
	)
	if err != nil {
		return fmt.Errorf("select admins: %w", err)
	}
	defer adminRows.Close()

	f.Admins = []domain.FranchiseAdmin{}
	for adminRows.Next() {
		var a domain.FranchiseAdmin
		if err := adminRows.Scan(&a.ID, &a.Name, &a.Email); err != nil {
			return fmt.Errorf("scan admin: %w", err)
		}
		f.Admins = append(f.Admins, a)
	}
	if err := adminRows.Err(); err != nil {
		return err
	}

	storeRows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.name, COALESCE(SUM(oi.price), 0) AS totalRevenue
		 FROM dinerOrder AS do
		 JOIN orderItem AS oi ON do.id=oi.orderId
		 RIGHT JOIN store AS s ON s.id=do.storeId
		 WHERE s.franchiseId=?
		 GROUP BY s.id, s.name`, f.ID,
	)
	if err != nil {
		return fmt.Errorf("select store revenue: %w", err)
	}
	defer storeRows.Close()

	f.Stores = []domain.Store{}
	for storeRows.Next() {
		var (
			s       domain.Store
			revenue float64
		)
		if err := storeRows.Scan(&s.ID, &s.Name, &revenue); err != nil {
			return fmt.Errorf("scan store revenue: %w", err)
		}
		s.TotalRevenue = &revenue
		f.Stores = append(f.Stores, s)
	}
	return storeRows.Err()
}
