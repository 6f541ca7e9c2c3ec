package postgres

import (
	"catalog/domain"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	))

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS items (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name          text NOT NULL,
	description   text NOT NULL DEFAULT '',
	category      text NOT NULL DEFAULT '',
	image         text NOT NULL DEFAULT '',
	custom_fields jsonb NOT NULL DEFAULT '{}',
	created_at    timestamptz NOT NULL,
	updated_at    timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS item_audit (
	id          uuid PRIMARY KEY,
	event       text NOT NULL,
	item_id     text NOT NULL,
	trace_id    text NOT NULL DEFAULT '',
	payload     jsonb NOT NULL DEFAULT '{}',
	received_at timestamptz NOT NULL
);`

// Migrate ensures the schema exists. Safe to run on every startup.
func (r *PgRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PgRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	var created domain.Item
	query := `
		INSERT INTO items (
			name, description, category, image, custom_fields,
			created_at, updated_at
		) VALUES (
			:name, :description, :category, :image, :custom_fields,
			:created_at, :updated_at
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, item)
	if err != nil {
		return created, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&created)
	}
	return created, err
}

func (r *PgRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	query := `SELECT * FROM items ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &items, query)

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PgRepository) SearchItems(ctx context.Context, searchQuery domain.SearchQuery) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	query, args := buildSearchQuery(searchQuery)

	err := r.db.SelectContext(ctx, &items, query, args...)

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PgRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	var i domain.Item
	query := `SELECT * FROM items WHERE id = $1`

	err := r.db.GetContext(ctx, &i, query, id)

	if err != nil {
		return i, err
	}

	return i, nil
}

func (r *PgRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	query := `
        UPDATE items SET
            name = :name,
            description = :description,
            category = :category,
            image = :image,
            custom_fields = :custom_fields,
            updated_at = :updated_at
        WHERE id = :id
    `

	_, err := r.db.NamedExecContext(ctx, query, item)
	return err
}

func (r *PgRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *PgRepository) RecordItemEvent(ctx context.Context, audit domain.ItemAudit) error {
	query := `
		INSERT INTO item_audit (id, event, item_id, trace_id, payload, received_at)
		VALUES (:id, :event, :item_id, :trace_id, :payload, :received_at)`

	// Payload goes over as a string so pq binds it as text, not bytea.
	params := map[string]interface{}{
		"id":          audit.ID,
		"event":       audit.Event,
		"item_id":     audit.ItemID,
		"trace_id":    audit.TraceID,
		"payload":     string(audit.Payload),
		"received_at": audit.ReceivedAt,
	}

	_, err := r.db.NamedExecContext(ctx, query, params)
	return err
}

// buildSearchQuery translates the search predicate to SQL. The term is a
// case-insensitive substring match over name, description, category and each
// custom-field key and value individually (jsonb_each_text, so JSON
// punctuation in the term never false-matches the document syntax); the
// category restriction is an exact equality ANDed on top. Results come back
// newest-created first either way.
func buildSearchQuery(q domain.SearchQuery) (string, []any) {
	query := `SELECT * FROM items`

	var (
		conditions []string
		args       []any
	)

	if term := strings.TrimSpace(q.Term); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d OR EXISTS ("+
				"SELECT 1 FROM jsonb_each_text(custom_fields) AS cf WHERE cf.key ILIKE $%d OR cf.value ILIKE $%d))",
			n, n, n, n, n,
		))
	}

	if q.HasCategory() {
		args = append(args, q.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	return query, args
}

// escapeLike neutralizes LIKE metacharacters so a literal % or _ in the
// search term does not act as a wildcard.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
