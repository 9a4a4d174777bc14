package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	vault "github.com/xraph/vault"
	"github.com/xraph/vault/sale"
	vaultstore "github.com/xraph/vault/store"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// compile-time interface check
var _ vaultstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("vault/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("vault/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Schedule Store ====================

func (s *Store) CreateSchedule(ctx context.Context, sched *vesting.Schedule) error {
	existing := new(scheduleModel)
	err := s.sdb.NewSelect(existing).
		Where("beneficiary = ?", sched.Beneficiary.String()).
		Scan(ctx)
	if err == nil {
		return vault.ErrDuplicateSchedule
	}
	if !isNoRows(err) {
		return err
	}

	m := toScheduleModel(sched)
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetSchedule(ctx context.Context, beneficiary types.Address) (*vesting.Schedule, error) {
	m := new(scheduleModel)
	err := s.sdb.NewSelect(m).
		Where("beneficiary = ?", beneficiary.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, vault.ErrNoSchedule
		}
		return nil, err
	}
	return fromScheduleModel(m)
}

func (s *Store) UpdateSchedule(ctx context.Context, sched *vesting.Schedule) error {
	m := toScheduleModel(sched)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return vault.ErrNoSchedule
	}
	return nil
}

// ==================== Lock Store ====================

func (s *Store) AppendLock(ctx context.Context, l *timelock.Lock) error {
	var existing []lockModel
	err := s.sdb.NewSelect(&existing).
		Where("holder = ?", l.Holder.String()).
		Where("asset = ?", l.Asset.String()).
		Scan(ctx)
	if err != nil && !isNoRows(err) {
		return err
	}

	m := toLockModel(l, len(existing))
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return err
	}

	return s.registerAsset(ctx, l.Holder, l.Asset)
}

func (s *Store) GetLocks(ctx context.Context, holder, asset types.Address) ([]timelock.Lock, error) {
	var models []lockModel
	err := s.sdb.NewSelect(&models).
		Where("holder = ?", holder.String()).
		Where("asset = ?", asset.String()).
		OrderExpr("position ASC").
		Scan(ctx)
	if err != nil && !isNoRows(err) {
		return nil, err
	}

	locks := make([]timelock.Lock, 0, len(models))
	for i := range models {
		l, err := fromLockModel(&models[i])
		if err != nil {
			return nil, err
		}
		locks = append(locks, *l)
	}
	return locks, nil
}

func (s *Store) PutLocks(ctx context.Context, holder, asset types.Address, locks []timelock.Lock) error {
	_, err := s.sdb.NewDelete((*lockModel)(nil)).
		Where("holder = ?", holder.String()).
		Where("asset = ?", asset.String()).
		Exec(ctx)
	if err != nil {
		return err
	}

	if len(locks) == 0 {
		_, err := s.sdb.NewDelete((*lockAssetModel)(nil)).
			Where("holder = ?", holder.String()).
			Where("asset = ?", asset.String()).
			Exec(ctx)
		return err
	}

	for i := range locks {
		m := toLockModel(&locks[i], i)
		if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
	}

	return s.registerAsset(ctx, holder, asset)
}

func (s *Store) ListAssets(ctx context.Context, holder types.Address) ([]types.Address, error) {
	var models []lockAssetModel
	err := s.sdb.NewSelect(&models).
		Where("holder = ?", holder.String()).
		OrderExpr("seq ASC").
		Scan(ctx)
	if err != nil && !isNoRows(err) {
		return nil, err
	}

	assets := make([]types.Address, 0, len(models))
	for i := range models {
		assets = append(assets, types.Address(models[i].Asset))
	}
	return assets, nil
}

// registerAsset records the asset in the holder's index if newly seen. The
// seq column is an insertion timestamp, so the index reads back in
// first-seen order.
func (s *Store) registerAsset(ctx context.Context, holder, asset types.Address) error {
	m := &lockAssetModel{
		Holder: holder.String(),
		Asset:  asset.String(),
		Seq:    time.Now().UnixNano(),
	}
	_, err := s.sdb.NewInsert(m).
		OnConflict("(holder, asset) DO NOTHING").
		Exec(ctx)
	return err
}

// ==================== Sale Store ====================

func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	existing := new(saleModel)
	err := s.sdb.NewSelect(existing).Limit(1).Scan(ctx)
	if err == nil {
		return vault.ErrDuplicateSale
	}
	if !isNoRows(err) {
		return err
	}

	m := toSaleModel(sl)
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetSale(ctx context.Context) (*sale.Sale, error) {
	m := new(saleModel)
	err := s.sdb.NewSelect(m).Limit(1).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, vault.ErrNoSale
		}
		return nil, err
	}
	return fromSaleModel(m)
}

func (s *Store) UpdateSale(ctx context.Context, sl *sale.Sale) error {
	m := toSaleModel(sl)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return vault.ErrNoSale
	}
	return nil
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
