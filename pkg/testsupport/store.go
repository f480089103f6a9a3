package testsupport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-portfolio/catalog"
)

// ErrEntityNotFound reports a lookup for an id the store does not hold.
var ErrEntityNotFound = errors.New("testsupport: entity not found")

var storeSeq atomic.Int64

type entityRecord struct {
	bun.BaseModel `bun:"table:portfolio_entities,alias:pe"`

	ID        int64          `bun:"id,pk,autoincrement"`
	Kind      string         `bun:"kind,notnull"`
	Payload   map[string]any `bun:"payload,type:jsonb,notnull"`
	SortOrder int            `bun:"sort_order,notnull,default:0"`
}

// Store is the reference backend's persistence layer: one sqlite table
// holding every entity kind, payloads stored exactly as submitted so
// localized fields round-trip in their wire shapes.
type Store struct {
	db       *bun.DB
	settings map[string]any
}

// NewStore opens a fresh in-memory sqlite database and creates the
// schema.
func NewStore(ctx context.Context) (*Store, error) {
	dsn := fmt.Sprintf("file:portfolio_testsupport_%d?mode=memory&cache=shared&_fk=1", storeSeq.Add(1))
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open sqlite: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*entityRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("testsupport: create table: %w", err)
	}

	return &Store{db: db, settings: map[string]any{}}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSettings replaces the site settings payload served by the
// aggregate endpoint.
func (s *Store) SetSettings(settings map[string]any) {
	if settings == nil {
		settings = map[string]any{}
	}
	s.settings = settings
}

// Settings returns the current site settings payload.
func (s *Store) Settings() map[string]any {
	return s.settings
}

// List returns every entity of one kind ordered by sort_order then id.
func (s *Store) List(ctx context.Context, kind catalog.Kind) ([]map[string]any, error) {
	var records []entityRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("kind = ?", kind.Segment()).
		Order("sort_order ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("testsupport: list %s: %w", kind, err)
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, withID(rec.Payload, rec.ID))
	}
	return out, nil
}

// Get returns one entity by id.
func (s *Store) Get(ctx context.Context, kind catalog.Kind, id int64) (map[string]any, error) {
	var rec entityRecord
	err := s.db.NewSelect().
		Model(&rec).
		Where("kind = ? AND id = ?", kind.Segment(), id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("testsupport: get %s/%d: %w", kind, id, err)
	}
	return withID(rec.Payload, rec.ID), nil
}

// Create stores a new entity and returns it with the assigned id.
func (s *Store) Create(ctx context.Context, kind catalog.Kind, payload map[string]any) (map[string]any, error) {
	rec := entityRecord{
		Kind:      kind.Segment(),
		Payload:   payload,
		SortOrder: sortOrderOf(payload),
	}
	if _, err := s.db.NewInsert().Model(&rec).Exec(ctx); err != nil {
		return nil, fmt.Errorf("testsupport: create %s: %w", kind, err)
	}
	return withID(rec.Payload, rec.ID), nil
}

// Update merges the submitted payload over the stored one and returns
// the result. Missing ids surface as ErrEntityNotFound.
func (s *Store) Update(ctx context.Context, kind catalog.Kind, id int64, payload map[string]any) (map[string]any, error) {
	var rec entityRecord
	err := s.db.NewSelect().
		Model(&rec).
		Where("kind = ? AND id = ?", kind.Segment(), id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("testsupport: update %s/%d: %w", kind, id, err)
	}

	for key, value := range payload {
		rec.Payload[key] = value
	}
	rec.SortOrder = sortOrderOf(rec.Payload)

	if _, err := s.db.NewUpdate().Model(&rec).WherePK().Exec(ctx); err != nil {
		return nil, fmt.Errorf("testsupport: update %s/%d: %w", kind, id, err)
	}
	return withID(rec.Payload, rec.ID), nil
}

// Delete removes one entity.
func (s *Store) Delete(ctx context.Context, kind catalog.Kind, id int64) error {
	res, err := s.db.NewDelete().
		Model((*entityRecord)(nil)).
		Where("kind = ? AND id = ?", kind.Segment(), id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("testsupport: delete %s/%d: %w", kind, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntityNotFound
	}
	return nil
}

func withID(payload map[string]any, id int64) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for key, value := range payload {
		out[key] = value
	}
	out["id"] = id
	return out
}

// sortOrderOf extracts the ordering column from a payload that may
// carry the value as a number or as its form-encoded string.
func sortOrderOf(payload map[string]any) int {
	switch v := payload["sort_order"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
