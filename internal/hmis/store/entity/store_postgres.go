package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

// PostgresStore keeps every open collection in one table keyed by kind and id.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS entities (
			kind TEXT NOT NULL,
			id UUID NOT NULL,
			extensions JSONB NOT NULL DEFAULT '{}',
			PRIMARY KEY (kind, id)
		)`,
	}
}

func (s *PostgresStore) Save(ctx context.Context, e *models.Entity) error {
	ext := []byte("{}")
	if e.Extensions != nil {
		raw, err := json.Marshal(e.Extensions)
		if err != nil {
			return fmt.Errorf("marshal entity extensions: %w", err)
		}
		ext = raw
	}
	query := `
		INSERT INTO entities (kind, id, extensions) VALUES ($1, $2, $3)
		ON CONFLICT (kind, id) DO UPDATE SET extensions = EXCLUDED.extensions
	`
	if _, err := s.db.ExecContext(ctx, query, string(e.Kind), e.ID, ext); err != nil {
		return fmt.Errorf("save %s entity: %w", e.Kind, err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) (*models.Entity, error) {
	var ext []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT extensions FROM entities WHERE kind = $1 AND id = $2`,
		string(kind), entityID).Scan(&ext)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find %s entity: %w", kind, err)
	}
	return decodeEntity(kind, entityID, ext)
}

func (s *PostgresStore) FindCoC(ctx context.Context, cocID id.CoCID) (*models.Entity, error) {
	return s.Find(ctx, models.EntityCoC, uuid.UUID(cocID))
}

func (s *PostgresStore) List(ctx context.Context, kind models.EntityKind) ([]*models.Entity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, extensions FROM entities WHERE kind = $1 ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s entities: %w", kind, err)
	}
	defer rows.Close()

	out := []*models.Entity{}
	for rows.Next() {
		var (
			entityID uuid.UUID
			ext      []byte
		)
		if err := rows.Scan(&entityID, &ext); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		e, err := decodeEntity(kind, entityID, ext)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return out, nil
}

func decodeEntity(kind models.EntityKind, entityID uuid.UUID, ext []byte) (*models.Entity, error) {
	e := &models.Entity{Kind: kind, ID: entityID}
	if err := json.Unmarshal(ext, &e.Extensions); err != nil {
		return nil, fmt.Errorf("unmarshal entity extensions: %w", err)
	}
	if len(e.Extensions) == 0 {
		e.Extensions = nil
	}
	return e, nil
}
