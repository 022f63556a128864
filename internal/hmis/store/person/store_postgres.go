package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"placemaker/internal/hmis/models"
	"placemaker/internal/hmis/validation"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

const table = "persons"

// PostgresStore persists persons as JSONB documents. The columns next to the
// document exist for lookups and for the partial unique index on full SSNs.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema returns the statements that create the persons table and its
// scoped SSN index.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + table + ` (
			personal_id UUID PRIMARY KEY,
			ssn TEXT NOT NULL DEFAULT '',
			ssn_type TEXT NOT NULL,
			coc_id UUID NULL,
			project_entry_date TIMESTAMPTZ NOT NULL,
			project_exit_date TIMESTAMPTZ NULL,
			document JSONB NOT NULL
		)`,
		validation.SSNIndexDDL(table),
	}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Person) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal person: %w", err)
	}
	query := `
		INSERT INTO persons (personal_id, ssn, ssn_type, coc_id, project_entry_date, project_exit_date, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(p.PersonalID),
		p.SSNInfo.SSN,
		string(p.SSNInfo.SSNType),
		nullableCoC(p.CoCID),
		p.ProjectEntryDate,
		p.ProjectExitDate,
		doc,
	)
	if err != nil {
		if mapped := uniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Person) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal person: %w", err)
	}
	query := `
		UPDATE persons
		SET ssn = $2, ssn_type = $3, coc_id = $4, project_entry_date = $5, project_exit_date = $6, document = $7
		WHERE personal_id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.PersonalID),
		p.SSNInfo.SSN,
		string(p.SSNInfo.SSNType),
		nullableCoC(p.CoCID),
		p.ProjectEntryDate,
		p.ProjectExitDate,
		doc,
	)
	if err != nil {
		if mapped := uniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update person: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, personalID id.PersonalID) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM persons WHERE personal_id = $1`, uuid.UUID(personalID))
	return scanPerson(row)
}

func (s *PostgresStore) FindByFullSSN(ctx context.Context, ssn string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT document FROM persons WHERE ssn = $1 AND ssn_type = $2`,
		ssn, string(models.SSNTypeFull))
	return scanPerson(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM persons ORDER BY personal_id`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p, err := decodePerson(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, personalID id.PersonalID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE personal_id = $1`, uuid.UUID(personalID))
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return requireRow(res)
}

func scanPerson(row *sql.Row) (*models.Person, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return decodePerson(doc)
}

func decodePerson(doc []byte) (*models.Person, error) {
	var p models.Person
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal person: %w", err)
	}
	return &p, nil
}

func nullableCoC(coc *id.CoCID) any {
	if coc == nil {
		return nil
	}
	return uuid.UUID(*coc)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// uniqueViolation maps a 23505 error to the uniqueness failure it reports.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Name() != "unique_violation" {
		return nil
	}
	if pqErr.Constraint == validation.SSNIndexName(table) {
		return ErrFullSSNTaken
	}
	return ErrPersonalIDTaken
}
