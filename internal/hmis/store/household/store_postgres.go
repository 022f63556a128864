package household

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

// PostgresStore keeps members in a UUID array so membership lookups can use
// ANY() without a join table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS households (
			household_id UUID PRIMARY KEY,
			members UUID[] NOT NULL DEFAULT '{}',
			extensions JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS households_members_idx ON households USING GIN (members)`,
	}
}

func (s *PostgresStore) Create(ctx context.Context, h *models.Household) error {
	ext, err := marshalExtensions(h.Extensions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO households (household_id, members, extensions) VALUES ($1, $2, $3)`,
		uuid.UUID(h.HouseholdID), pq.Array(memberStrings(h.Members)), ext)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrHouseholdIDTaken
		}
		return fmt.Errorf("insert household: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, h *models.Household) error {
	ext, err := marshalExtensions(h.Extensions)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE households SET members = $2, extensions = $3 WHERE household_id = $1`,
		uuid.UUID(h.HouseholdID), pq.Array(memberStrings(h.Members)), ext)
	if err != nil {
		return fmt.Errorf("update household: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, householdID id.HouseholdID) (*models.Household, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT household_id, members, extensions FROM households WHERE household_id = $1`,
		uuid.UUID(householdID))
	h, err := scanHousehold(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find household: %w", err)
	}
	return h, nil
}

func (s *PostgresStore) FindByMember(ctx context.Context, personalID id.PersonalID) ([]*models.Household, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT household_id, members, extensions FROM households WHERE $1 = ANY(members) ORDER BY household_id`,
		uuid.UUID(personalID))
	if err != nil {
		return nil, fmt.Errorf("find households by member: %w", err)
	}
	defer rows.Close()

	var out []*models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan household: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate households: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, householdID id.HouseholdID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM households WHERE household_id = $1`, uuid.UUID(householdID))
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHousehold(row scanner) (*models.Household, error) {
	var (
		householdID uuid.UUID
		members     []string
		ext         []byte
	)
	if err := row.Scan(&householdID, pq.Array(&members), &ext); err != nil {
		return nil, err
	}
	h := &models.Household{HouseholdID: id.HouseholdID(householdID)}
	for _, m := range members {
		personalID, err := id.ParsePersonalID(m)
		if err != nil {
			return nil, fmt.Errorf("stored member %q: %w", m, err)
		}
		h.Members = append(h.Members, personalID)
	}
	if len(ext) > 0 {
		if err := json.Unmarshal(ext, &h.Extensions); err != nil {
			return nil, fmt.Errorf("unmarshal household extensions: %w", err)
		}
		if len(h.Extensions) == 0 {
			h.Extensions = nil
		}
	}
	return h, nil
}

func memberStrings(members []id.PersonalID) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return out
}

func marshalExtensions(ext models.Extensions) ([]byte, error) {
	if ext == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(ext)
	if err != nil {
		return nil, fmt.Errorf("marshal household extensions: %w", err)
	}
	return raw, nil
}
