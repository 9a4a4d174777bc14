package sqlite

import (
	"strconv"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/vault/id"
	"github.com/xraph/vault/sale"
	"github.com/xraph/vault/timelock"
	"github.com/xraph/vault/types"
	"github.com/xraph/vault/vesting"
)

// Amounts are wad-scaled uint64 values that overflow SQLite's signed INTEGER
// affinity, so they travel as decimal TEXT columns.

func amountString(a types.Amount) string {
	return strconv.FormatUint(uint64(a), 10)
}

func parseAmount(s string) (types.Amount, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.Amount(v), nil
}

type scheduleModel struct {
	grove.BaseModel `grove:"table:vault_schedules"`

	ID          string    `grove:"id,pk"`
	Beneficiary string    `grove:"beneficiary"`
	Total       string    `grove:"total"`
	StartTime   int64     `grove:"start_time"`
	Cliff       int64     `grove:"cliff"`
	Duration    int64     `grove:"duration"`
	LastRelease int64     `grove:"last_release"`
	Released    string    `grove:"released"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func toScheduleModel(s *vesting.Schedule) *scheduleModel {
	return &scheduleModel{
		ID:          s.ID.String(),
		Beneficiary: s.Beneficiary.String(),
		Total:       amountString(s.Total),
		StartTime:   int64(s.Start),
		Cliff:       int64(s.Cliff),
		Duration:    int64(s.Duration),
		LastRelease: int64(s.LastRelease),
		Released:    amountString(s.Released),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func fromScheduleModel(m *scheduleModel) (*vesting.Schedule, error) {
	scheduleID, err := id.ParseScheduleID(m.ID)
	if err != nil {
		return nil, err
	}
	total, err := parseAmount(m.Total)
	if err != nil {
		return nil, err
	}
	released, err := parseAmount(m.Released)
	if err != nil {
		return nil, err
	}

	return &vesting.Schedule{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          scheduleID,
		Beneficiary: types.Address(m.Beneficiary),
		Total:       total,
		Start:       uint64(m.StartTime),
		Cliff:       uint64(m.Cliff),
		Duration:    uint64(m.Duration),
		LastRelease: uint64(m.LastRelease),
		Released:    released,
	}, nil
}

type lockModel struct {
	grove.BaseModel `grove:"table:vault_locks"`

	ID         string    `grove:"id,pk"`
	Holder     string    `grove:"holder"`
	Asset      string    `grove:"asset"`
	Position   int       `grove:"position"`
	Amount     string    `grove:"amount"`
	UnlockTime int64     `grove:"unlock_time"`
	CreatedAt  time.Time `grove:"created_at"`
	UpdatedAt  time.Time `grove:"updated_at"`
}

func toLockModel(l *timelock.Lock, position int) *lockModel {
	return &lockModel{
		ID:         l.ID.String(),
		Holder:     l.Holder.String(),
		Asset:      l.Asset.String(),
		Position:   position,
		Amount:     amountString(l.Amount),
		UnlockTime: int64(l.UnlockTime),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func fromLockModel(m *lockModel) (*timelock.Lock, error) {
	lockID, err := id.ParseLockID(m.ID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(m.Amount)
	if err != nil {
		return nil, err
	}

	return &timelock.Lock{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:         lockID,
		Holder:     types.Address(m.Holder),
		Asset:      types.Address(m.Asset),
		Amount:     amount,
		UnlockTime: uint64(m.UnlockTime),
	}, nil
}

// lockAssetModel is the per-holder asset index, kept in first-seen order.
type lockAssetModel struct {
	grove.BaseModel `grove:"table:vault_lock_assets"`

	Holder string `grove:"holder,pk"`
	Asset  string `grove:"asset,pk"`
	Seq    int64  `grove:"seq"`
}

type saleModel struct {
	grove.BaseModel `grove:"table:vault_sales"`

	ID           string    `grove:"id,pk"`
	Asset        string    `grove:"asset"`
	PaymentAsset string    `grove:"payment_asset"`
	Capacity     string    `grove:"capacity"`
	Sold         string    `grove:"sold"`
	Collected    string    `grove:"collected"`
	Tier0        string    `grove:"tier0"`
	Tier1        string    `grove:"tier1"`
	Tier2        string    `grove:"tier2"`
	Tier3        string    `grove:"tier3"`
	MaxPerTx     string    `grove:"max_per_tx"`
	EndTime      int64     `grove:"end_time"`
	EndHeight    int64     `grove:"end_height"`
	Closed       bool      `grove:"closed"`
	CreatedAt    time.Time `grove:"created_at"`
	UpdatedAt    time.Time `grove:"updated_at"`
}

func toSaleModel(s *sale.Sale) *saleModel {
	return &saleModel{
		ID:           s.ID.String(),
		Asset:        s.Asset.String(),
		PaymentAsset: s.PaymentAsset.String(),
		Capacity:     amountString(s.Capacity),
		Sold:         amountString(s.Sold),
		Collected:    amountString(s.Collected),
		Tier0:        amountString(s.Tiers[0]),
		Tier1:        amountString(s.Tiers[1]),
		Tier2:        amountString(s.Tiers[2]),
		Tier3:        amountString(s.Tiers[3]),
		MaxPerTx:     amountString(s.MaxPerTx),
		EndTime:      int64(s.EndTime),
		EndHeight:    int64(s.EndHeight),
		Closed:       s.Closed,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func fromSaleModel(m *saleModel) (*sale.Sale, error) {
	saleID, err := id.ParseSaleID(m.ID)
	if err != nil {
		return nil, err
	}

	s := &sale.Sale{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:           saleID,
		Asset:        types.Address(m.Asset),
		PaymentAsset: types.Address(m.PaymentAsset),
		EndTime:      uint64(m.EndTime),
		EndHeight:    uint64(m.EndHeight),
		Closed:       m.Closed,
	}

	if s.Capacity, err = parseAmount(m.Capacity); err != nil {
		return nil, err
	}
	if s.Sold, err = parseAmount(m.Sold); err != nil {
		return nil, err
	}
	if s.Collected, err = parseAmount(m.Collected); err != nil {
		return nil, err
	}
	if s.MaxPerTx, err = parseAmount(m.MaxPerTx); err != nil {
		return nil, err
	}
	for i, col := range []string{m.Tier0, m.Tier1, m.Tier2, m.Tier3} {
		if s.Tiers[i], err = parseAmount(col); err != nil {
			return nil, err
		}
	}

	return s, nil
}
