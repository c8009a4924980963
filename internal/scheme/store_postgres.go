package scheme

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "janseva/pkg/domain"
	"janseva/pkg/platform/sentinel"
)

// PostgresStore persists the scheme catalog in PostgreSQL. Rules, document
// lists, and the amendment log are stored as jsonb since they are read and
// written as a unit with the scheme.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema creates the schemes table. Called at startup when PostgreSQL is
// configured.
func (s *PostgresStore) Schema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schemes (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			sector TEXT NOT NULL,
			benefit_amount BIGINT NOT NULL,
			benefit_type TEXT NOT NULL,
			eligibility JSONB NOT NULL,
			required_documents JSONB NOT NULL,
			status TEXT NOT NULL,
			amendments JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create schemes table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, sc Scheme) error {
	eligibility, err := json.Marshal(sc.Eligibility)
	if err != nil {
		return fmt.Errorf("marshal eligibility rules: %w", err)
	}
	docs, err := json.Marshal(stringsOrEmpty(sc.RequiredDocuments))
	if err != nil {
		return fmt.Errorf("marshal required documents: %w", err)
	}
	amendments, err := json.Marshal(amendmentsOrEmpty(sc.Amendments))
	if err != nil {
		return fmt.Errorf("marshal amendments: %w", err)
	}

	query := `
		INSERT INTO schemes (
			id, name, sector, benefit_amount, benefit_type,
			eligibility, required_documents, status, amendments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			benefit_amount = EXCLUDED.benefit_amount,
			benefit_type = EXCLUDED.benefit_type,
			eligibility = EXCLUDED.eligibility,
			required_documents = EXCLUDED.required_documents,
			status = EXCLUDED.status,
			amendments = EXCLUDED.amendments,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(sc.ID), sc.Name, string(sc.Sector), sc.BenefitAmount, sc.BenefitType,
		eligibility, docs, string(sc.Status), amendments,
		sc.CreatedAt, sc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert scheme: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, schemeID id.SchemeID) (Scheme, error) {
	row := s.db.QueryRowContext(ctx, selectSchemes+` WHERE id = $1`, uuid.UUID(schemeID))
	sc, err := scanScheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scheme{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Scheme{}, fmt.Errorf("find scheme: %w", err)
	}
	return sc, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Scheme, error) {
	return s.list(ctx, selectSchemes+` ORDER BY name`)
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]Scheme, error) {
	return s.list(ctx, selectSchemes+` WHERE status = 'active' ORDER BY name`)
}

func (s *PostgresStore) Delete(ctx context.Context, schemeID id.SchemeID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schemes WHERE id = $1`, uuid.UUID(schemeID))
	if err != nil {
		return fmt.Errorf("delete scheme: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scheme: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const selectSchemes = `
	SELECT id, name, sector, benefit_amount, benefit_type,
	       eligibility, required_documents, status, amendments,
	       created_at, updated_at
	FROM schemes`

func (s *PostgresStore) list(ctx context.Context, query string) ([]Scheme, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var out []Scheme
	for rows.Next() {
		sc, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheme: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheme(row rowScanner) (Scheme, error) {
	var (
		sc          Scheme
		rawID       uuid.UUID
		sector      string
		status      string
		eligibility []byte
		docs        []byte
		amendments  []byte
	)
	err := row.Scan(
		&rawID, &sc.Name, &sector, &sc.BenefitAmount, &sc.BenefitType,
		&eligibility, &docs, &status, &amendments,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return Scheme{}, err
	}
	sc.ID = id.SchemeID(rawID)
	sc.Sector = Sector(sector)
	sc.Status = Status(status)
	if err := json.Unmarshal(eligibility, &sc.Eligibility); err != nil {
		return Scheme{}, fmt.Errorf("unmarshal eligibility rules: %w", err)
	}
	if err := json.Unmarshal(docs, &sc.RequiredDocuments); err != nil {
		return Scheme{}, fmt.Errorf("unmarshal required documents: %w", err)
	}
	if err := json.Unmarshal(amendments, &sc.Amendments); err != nil {
		return Scheme{}, fmt.Errorf("unmarshal amendments: %w", err)
	}
	return sc, nil
}

func stringsOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func amendmentsOrEmpty(v []Amendment) []Amendment {
	if v == nil {
		return []Amendment{}
	}
	return v
}
