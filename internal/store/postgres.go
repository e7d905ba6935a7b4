package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const analysisColumns = `id, name, params, domains, weights, items,
	pareto_frontier, skipped, duration_ms, created_at`

const summaryColumns = `id, name, params, jsonb_array_length(items), cardinality(domains),
	duration_ms, created_at`

func (s *PostgresStore) CreateAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	paramsJSON, err := json.Marshal(a.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	itemsJSON, err := json.Marshal(a.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	var createdAt *time.Time
	if !a.CreatedAt.IsZero() {
		createdAt = &a.CreatedAt
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO ranker_analyses (id, name, params, domains, weights, items,
			pareto_frontier, skipped, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()))
		RETURNING created_at`,
		a.ID, a.Name, paramsJSON, a.Domains, a.Weights, itemsJSON,
		nonNil(a.Frontier), nonNil(a.Skipped), a.DurationMs, createdAt,
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	a := &Analysis{}
	var paramsJSON, itemsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+analysisColumns+`
		FROM ranker_analyses WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.Name, &paramsJSON, &a.Domains, &a.Weights, &itemsJSON,
		&a.Frontier, &a.Skipped, &a.DurationMs, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paramsJSON, &a.Params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &a.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]*AnalysisSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM ranker_analyses WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Name != "" {
		n++
		query += fmt.Sprintf(" AND name = $%d", n)
		args = append(args, filter.Name)
	}

	query += " ORDER BY created_at DESC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*AnalysisSummary{}
	for rows.Next() {
		sum := &AnalysisSummary{}
		var paramsJSON []byte
		if err := rows.Scan(&sum.ID, &sum.Name, &paramsJSON, &sum.NumItems, &sum.NumDomains,
			&sum.DurationMs, &sum.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paramsJSON, &sum.Params); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ranker_analyses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *PostgresStore) PruneAnalyses(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ranker_analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
