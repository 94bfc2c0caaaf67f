package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/deppfellow/hbnb-api/internal/database"
	"github.com/deppfellow/hbnb-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// baseColumns are stored on every table ahead of the kind's own fields.
var baseColumns = []string{"id", "created_at", "updated_at", "attributes"}

// attributesJSON is attributes read back as text, so numbers keep their
// exact representation instead of passing through float64.
const attributesJSON = "attributes_json"

func selectFrom(kind model.Kind) string {
	return fmt.Sprintf(`SELECT *, attributes::text AS %s FROM %s`, attributesJSON, table(kind))
}

// PostgresStorage stores one table per kind. Keys outside a kind's field
// table go into the attributes JSONB column.
type PostgresStorage struct {
	db            *database.Database
	logger        *zerolog.Logger
	slowThreshold time.Duration
}

func NewPostgresStorage(db *database.Database, logger *zerolog.Logger, slowThreshold time.Duration) *PostgresStorage {
	return &PostgresStorage{
		db:            db,
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (p *PostgresStorage) Session(_ context.Context) Session {
	return &postgresSession{storage: p}
}

// postgresSession opens its transaction on first use.
type postgresSession struct {
	storage *PostgresStorage
	tx      pgx.Tx
	closed  bool
}

func (s *postgresSession) begin(ctx context.Context) (pgx.Tx, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx, nil
	}

	tx, err := s.storage.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	s.tx = tx
	return tx, nil
}

// observe warns about statements slower than the configured threshold.
func (s *postgresSession) observe(start time.Time, query string) {
	elapsed := time.Since(start)
	if s.storage.slowThreshold <= 0 || elapsed < s.storage.slowThreshold {
		return
	}
	s.storage.logger.Warn().
		Dur("duration", elapsed).
		Str("query", query).
		Msg("slow query")
}

func (s *postgresSession) query(ctx context.Context, kind model.Kind, sql string, args ...any) ([]model.Entity, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", kind.Table())
	}
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	s.observe(start, sql)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect %s", kind.Table())
	}

	out := make([]model.Entity, 0, len(records))
	for _, record := range records {
		e, err := hydrate(kind, record)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// hydrate builds an entity of kind from one row.
func hydrate(kind model.Kind, record map[string]any) (model.Entity, error) {
	e, err := model.New(kind)
	if err != nil {
		return nil, err
	}

	_, hasText := record[attributesJSON]
	for name, value := range record {
		if name == "attributes" && hasText {
			continue
		}
		if name == "attributes" || name == attributesJSON {
			attrs, err := decodeAttributes(value)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to decode %s attributes", kind.Table())
			}
			for k, v := range attrs {
				if err := e.Load(k, v); err != nil {
					return nil, errors.Wrapf(err, "failed to load %s attribute", kind.Table())
				}
			}
			continue
		}
		if err := e.Load(name, value); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s column", kind.Table())
		}
	}
	return e, nil
}

func decodeAttributes(value any) (map[string]any, error) {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return nil, errors.Errorf("unexpected attributes type %T", value)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var attrs map[string]any
	if err := decoder.Decode(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// column returns the quoted column for field, rejecting names that are not
// part of kind's table.
func column(kind model.Kind, field string) (string, error) {
	if slices.Contains(baseColumns, field) {
		return pgx.Identifier{field}.Sanitize(), nil
	}

	e, err := model.New(kind)
	if err != nil {
		return "", err
	}
	for _, c := range e.Columns() {
		if c.Name == field {
			return pgx.Identifier{field}.Sanitize(), nil
		}
	}
	return "", fmt.Errorf("%s has no column %q", kind.Table(), field)
}

func table(kind model.Kind) string {
	return pgx.Identifier{kind.Table()}.Sanitize()
}

func (s *postgresSession) Get(ctx context.Context, kind model.Kind, id string) (model.Entity, error) {
	found, err := s.query(ctx, kind, selectFrom(kind)+` WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (s *postgresSession) All(ctx context.Context, kind model.Kind) ([]model.Entity, error) {
	return s.query(ctx, kind, selectFrom(kind)+` ORDER BY created_at, id`)
}

func (s *postgresSession) AllBy(ctx context.Context, kind model.Kind, field, value string) ([]model.Entity, error) {
	col, err := column(kind, field)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, kind,
		selectFrom(kind)+fmt.Sprintf(` WHERE %s = $1 ORDER BY created_at, id`, col),
		value,
	)
}

func (s *postgresSession) Count(ctx context.Context, kind model.Kind) (int, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}

	sql := fmt.Sprintf(`SELECT count(*) FROM %s`, table(kind))
	start := time.Now()
	var n int
	err = tx.QueryRow(ctx, sql).Scan(&n)
	s.observe(start, sql)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", kind.Table())
	}
	return n, nil
}

func (s *postgresSession) Add(ctx context.Context, e model.Entity) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	e.Base().Touch()

	base := e.Base()
	attributes := base.Extra
	if attributes == nil {
		attributes = map[string]any{}
	}

	names := slices.Clone(baseColumns)
	args := []any{base.ID, base.CreatedAt, base.UpdatedAt, attributes}
	for _, c := range e.Columns() {
		names = append(names, c.Name)
		args = append(args, c.Value)
	}

	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	var updates []string
	for i, name := range names {
		quoted[i] = pgx.Identifier{name}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if name != "id" && name != "created_at" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoted[i], quoted[i]))
		}
	}

	sql := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s`,
		table(e.Kind()),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	start := time.Now()
	_, err = tx.Exec(ctx, sql, args...)
	s.observe(start, sql)
	if err != nil {
		return errors.Wrapf(err, "failed to upsert %s", e.Kind().Table())
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for dependents.
func (s *postgresSession) Delete(ctx context.Context, e model.Entity) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	sql := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table(e.Kind()))
	start := time.Now()
	_, err = tx.Exec(ctx, sql, e.Base().ID)
	s.observe(start, sql)
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s", e.Kind().Table())
	}
	return nil
}

func (s *postgresSession) Save(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Close rolls back any uncommitted work. It does not use the request
// context, which may already be cancelled.
func (s *postgresSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Wrap(err, "failed to roll back transaction")
	}
	return nil
}
