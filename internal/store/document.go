package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DocumentRepo stores a single named JSON document. It satisfies
// progress.Persister and is used the same way for settings and card state.
type DocumentRepo struct {
	drv  *entsql.Driver
	name string
	now  func() time.Time
}

type documentRow struct {
	Data []byte `sql:"data"`
}

// Load returns the stored document, or nil if none exists.
func (r *DocumentRepo) Load(ctx context.Context) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table("documents")).
		Where(entsql.EQ("name", r.name)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query %s document: %w", r.name, err)
	}
	defer rows.Close()

	var docs []documentRow
	if err := entsql.ScanSlice(rows, &docs); err != nil {
		return nil, fmt.Errorf("scan %s document: %w", r.name, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0].Data, nil
}

// Save replaces the stored document.
func (r *DocumentRepo) Save(ctx context.Context, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert("documents").
		Columns("name", "data", "updated_at").
		Values(r.name, data, r.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s document: %w", r.name, err)
	}
	return nil
}

// Clear deletes the stored document.
func (r *DocumentRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete("documents").
		Where(entsql.EQ("name", r.name)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear %s document: %w", r.name, err)
	}
	return nil
}
