package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	vault "github.com/xraph/vault"
	"github.com/xraph/vault/sale"
	vaultstore "github.com/xraph/vault/store"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Collection name constants.
const (
	colSchedules  = "vault_schedules"
	colLocks      = "vault_locks"
	colLockAssets = "vault_lock_assets"
	colSales      = "vault_sales"
)

// compile-time interface check
var _ vaultstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all vault collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("vault/mongo: migrate %s indexes: %w", col, err)
		}
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
	var existing scheduleModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"beneficiary": sched.Beneficiary.String()}).
		Scan(ctx)
	if err == nil {
		return vault.ErrDuplicateSchedule
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("vault/mongo: check schedule: %w", err)
	}

	m := toScheduleModel(sched)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("vault/mongo: create schedule: %w", err)
	}
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, beneficiary types.Address) (*vesting.Schedule, error) {
	var m scheduleModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"beneficiary": beneficiary.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, vault.ErrNoSchedule
		}
		return nil, fmt.Errorf("vault/mongo: get schedule: %w", err)
	}
	return fromScheduleModel(&m)
}

func (s *Store) UpdateSchedule(ctx context.Context, sched *vesting.Schedule) error {
	m := toScheduleModel(sched)

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("vault/mongo: update schedule: %w", err)
	}
	if res.MatchedCount() == 0 {
		return vault.ErrNoSchedule
	}
	return nil
}

// ==================== Lock Store ====================

func (s *Store) AppendLock(ctx context.Context, l *timelock.Lock) error {
	var existing []lockModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"holder": l.Holder.String(), "asset": l.Asset.String()}).
		Scan(ctx)
	if err != nil && !isNoDocuments(err) {
		return fmt.Errorf("vault/mongo: count locks: %w", err)
	}

	m := toLockModel(l, len(existing))
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("vault/mongo: append lock: %w", err)
	}

	return s.registerAsset(ctx, l.Holder, l.Asset)
}

func (s *Store) GetLocks(ctx context.Context, holder, asset types.Address) ([]timelock.Lock, error) {
	var models []lockModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"holder": holder.String(), "asset": asset.String()}).
		Sort(bson.D{{Key: "position", Value: 1}}).
		Scan(ctx)
	if err != nil && !isNoDocuments(err) {
		return nil, fmt.Errorf("vault/mongo: get locks: %w", err)
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
	_, err := s.mdb.NewDelete((*lockModel)(nil)).
		Filter(bson.M{"holder": holder.String(), "asset": asset.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("vault/mongo: clear locks: %w", err)
	}

	if len(locks) == 0 {
		_, err := s.mdb.NewDelete((*lockAssetModel)(nil)).
			Filter(bson.M{"holder": holder.String(), "asset": asset.String()}).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("vault/mongo: deregister asset: %w", err)
		}
		return nil
	}

	for i := range locks {
		m := toLockModel(&locks[i], i)
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return fmt.Errorf("vault/mongo: put lock: %w", err)
		}
	}

	return s.registerAsset(ctx, holder, asset)
}

func (s *Store) ListAssets(ctx context.Context, holder types.Address) ([]types.Address, error) {
	var models []lockAssetModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"holder": holder.String()}).
		Sort(bson.D{{Key: "seq", Value: 1}}).
		Scan(ctx)
	if err != nil && !isNoDocuments(err) {
		return nil, fmt.Errorf("vault/mongo: list assets: %w", err)
	}

	assets := make([]types.Address, 0, len(models))
	for i := range models {
		assets = append(assets, types.Address(models[i].Asset))
	}
	return assets, nil
}

// registerAsset records the asset in the holder's index if newly seen. The
// seq field is an insertion timestamp, so the index reads back in first-seen
// order.
func (s *Store) registerAsset(ctx context.Context, holder, asset types.Address) error {
	var existing lockAssetModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"holder": holder.String(), "asset": asset.String()}).
		Scan(ctx)
	if err == nil {
		return nil
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("vault/mongo: check asset index: %w", err)
	}

	m := &lockAssetModel{
		ID:     holder.String() + "/" + asset.String(),
		Holder: holder.String(),
		Asset:  asset.String(),
		Seq:    time.Now().UnixNano(),
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("vault/mongo: register asset: %w", err)
	}
	return nil
}

// ==================== Sale Store ====================

func (s *Store) CreateSale(ctx context.Context, sl *sale.Sale) error {
	var existing saleModel
	err := s.mdb.NewFind(&existing).Filter(bson.M{}).Scan(ctx)
	if err == nil {
		return vault.ErrDuplicateSale
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("vault/mongo: check sale: %w", err)
	}

	m := toSaleModel(sl)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("vault/mongo: create sale: %w", err)
	}
	return nil
}

func (s *Store) GetSale(ctx context.Context) (*sale.Sale, error) {
	var m saleModel
	err := s.mdb.NewFind(&m).Filter(bson.M{}).Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, vault.ErrNoSale
		}
		return nil, fmt.Errorf("vault/mongo: get sale: %w", err)
	}
	return fromSaleModel(&m)
}

func (s *Store) UpdateSale(ctx context.Context, sl *sale.Sale) error {
	m := toSaleModel(sl)

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("vault/mongo: update sale: %w", err)
	}
	if res.MatchedCount() == 0 {
		return vault.ErrNoSale
	}
	return nil
}

// isNoDocuments checks for the driver's no-documents sentinel.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all vault collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colSchedules: {
			{
				Keys:    bson.D{{Key: "beneficiary", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colLocks: {
			{
				Keys:    bson.D{{Key: "holder", Value: 1}, {Key: "asset", Value: 1}, {Key: "position", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colLockAssets: {
			{Keys: bson.D{{Key: "holder", Value: 1}, {Key: "seq", Value: 1}}},
		},
		colSales: {},
	}
}
