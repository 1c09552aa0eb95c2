package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("region not found")

// Store keeps the editable rate table in a SQLite file
type Store struct {
	db *sqlx.DB
}

type rateRow struct {
	Region             string  `db:"region"`
	StateIncentiveRate float64 `db:"state_incentive_rate"`
	SrecPricePerMwh    float64 `db:"srec_price_per_mwh"`
	InstallCostPerKw   float64 `db:"install_cost_per_kw"`
}

func (r rateRow) rates() engine.RegionRates {
	return engine.RegionRates{
		StateIncentiveRate: r.StateIncentiveRate,
		SrecPricePerMwh:    r.SrecPricePerMwh,
		InstallCostPerKw:   r.InstallCostPerKw,
	}
}

// NewStore opens the database and applies pending migrations
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

const ratesSeededKey = "rates_seeded"

// SeedRates inserts the regions of table that are not stored yet and returns how many were added.
// Existing rows are left untouched so operator edits survive a re-seed.
func (s *Store) SeedRates(ctx context.Context, table engine.RateTable) (int, error) {
	return s.seed(ctx, table, false)
}

// EnsureSeeded seeds table only into a store that has never been seeded. Regions deleted
// after the first seed stay deleted.
func (s *Store) EnsureSeeded(ctx context.Context, table engine.RateTable) (int, error) {
	return s.seed(ctx, table, true)
}

// Seeded reports whether rates were ever seeded into the store
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	return seeded(ctx, s.db)
}

func seeded(ctx context.Context, q sqlx.QueryerContext) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, `SELECT COUNT(*) FROM store_meta WHERE key = ?`, ratesSeededKey); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) seed(ctx context.Context, table engine.RateTable, once bool) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if once {
		done, err := seeded(ctx, tx)
		if err != nil {
			return 0, err
		}
		if done {
			return 0, nil
		}
	}

	query := `INSERT OR IGNORE INTO region_rates
		(region, state_incentive_rate, srec_price_per_mwh, install_cost_per_kw)
		VALUES (?, ?, ?, ?)`

	inserted := 0
	snapshot := table.Snapshot()
	for _, region := range table.Regions() {
		r := snapshot[region]
		res, err := tx.ExecContext(ctx, query, string(region), r.StateIncentiveRate, r.SrecPricePerMwh, r.InstallCostPerKw)
		if err != nil {
			return 0, fmt.Errorf("seeding %s: %w", region, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO store_meta (key, value, updated_at)
		VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, ratesSeededKey)
	if err != nil {
		return 0, fmt.Errorf("marking rates seeded: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// SaveRegionRates saves or updates the rates of one region
func (s *Store) SaveRegionRates(ctx context.Context, region engine.Region, r engine.RegionRates) error {
	if region == "" {
		return &engine.InvalidInputError{Field: "region", Reason: "must not be empty"}
	}
	if err := engine.ValidateRates(r); err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO region_rates
		(region, state_incentive_rate, srec_price_per_mwh, install_cost_per_kw, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`

	_, err := s.db.ExecContext(ctx, query, string(region), r.StateIncentiveRate, r.SrecPricePerMwh, r.InstallCostPerKw)
	return err
}

// GetRegionRates retrieves the rates of one region
func (s *Store) GetRegionRates(ctx context.Context, region engine.Region) (engine.RegionRates, error) {
	query := `SELECT region, state_incentive_rate, srec_price_per_mwh, install_cost_per_kw
		FROM region_rates WHERE region = ?`

	var row rateRow
	if err := s.db.GetContext(ctx, &row, query, string(region)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return engine.RegionRates{}, fmt.Errorf("%s: %w", region, ErrNotFound)
		}
		return engine.RegionRates{}, err
	}
	return row.rates(), nil
}

// ListRegionRates returns every stored region
func (s *Store) ListRegionRates(ctx context.Context) (map[engine.Region]engine.RegionRates, error) {
	query := `SELECT region, state_incentive_rate, srec_price_per_mwh, install_cost_per_kw
		FROM region_rates ORDER BY region`

	var rows []rateRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	out := make(map[engine.Region]engine.RegionRates, len(rows))
	for _, row := range rows {
		out[engine.Region(row.Region)] = row.rates()
	}
	return out, nil
}

// DeleteRegionRates removes a region; estimates for it fall back to the default rates
func (s *Store) DeleteRegionRates(ctx context.Context, region engine.Region) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM region_rates WHERE region = ?`, string(region))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", region, ErrNotFound)
	}
	return nil
}

// LoadRateTable reads the stored rates into an immutable table
func (s *Store) LoadRateTable(ctx context.Context) (engine.RateTable, error) {
	rates, err := s.ListRegionRates(ctx)
	if err != nil {
		return engine.RateTable{}, fmt.Errorf("loading rate table: %w", err)
	}
	return engine.NewRateTable(rates), nil
}

// LoadRateTableOr reads the stored rates, or returns builtin when the store was never seeded.
// An initialised store that has been emptied yields an empty table, so every region falls back
// to the default incentive rates.
func (s *Store) LoadRateTableOr(ctx context.Context, builtin engine.RateTable) (engine.RateTable, bool, error) {
	done, err := s.Seeded(ctx)
	if err != nil {
		return engine.RateTable{}, false, fmt.Errorf("checking seed state: %w", err)
	}
	if !done {
		return builtin, false, nil
	}
	table, err := s.LoadRateTable(ctx)
	return table, true, err
}
