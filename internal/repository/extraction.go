package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/musmankhan/cnic-ocr/internal/common"
	"github.com/musmankhan/cnic-ocr/internal/entity"
)

// Placeholders use the $n form, which both pgx and SQLite accept.
const extractionSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id             TEXT PRIMARY KEY,
	filename       TEXT NOT NULL,
	engine         TEXT NOT NULL,
	image_hash     TEXT NOT NULL,
	raw_text       TEXT NOT NULL,
	identity_number TEXT,
	name           TEXT,
	father_name    TEXT,
	gender         TEXT,
	country_of_stay TEXT,
	date_of_birth  TEXT,
	date_of_issue  TEXT,
	date_of_expiry TEXT,
	confidence     DOUBLE PRECISION NOT NULL,
	filled_fields  INTEGER NOT NULL,
	created_at     TEXT NOT NULL
)`

const insertExtraction = `
INSERT INTO extractions (
	id, filename, engine, image_hash, raw_text,
	identity_number, name, father_name, gender, country_of_stay,
	date_of_birth, date_of_issue, date_of_expiry,
	confidence, filled_fields, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

const selectExtractions = `
SELECT id, filename, engine, image_hash, raw_text,
	identity_number, name, father_name, gender, country_of_stay,
	date_of_birth, date_of_issue, date_of_expiry,
	confidence, filled_fields, created_at
FROM extractions
ORDER BY created_at DESC
LIMIT $1`

type ExtractionRepository interface {
	Save(ctx context.Context, ex *entity.Extraction) error
	List(ctx context.Context, limit int) ([]*entity.Extraction, error)
}

type extractionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExtractionRepository creates the history table if missing and returns
// the repository.
func NewExtractionRepository(ctx context.Context, db *sql.DB, logger *slog.Logger) (ExtractionRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.ExecContext(ctx, extractionSchema); err != nil {
		logger.Error("failed to create extractions table", "error", err)
		return nil, common.WrapError(err, "create extractions table")
	}
	return &extractionRepository{db: db, logger: logger}, nil
}

func (r *extractionRepository) Save(ctx context.Context, ex *entity.Extraction) error {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	// RFC3339 UTC text sorts chronologically and round-trips through both
	// Postgres and SQLite without driver-specific time handling.
	_, err := r.db.ExecContext(ctx, insertExtraction,
		ex.ID.String(), ex.Filename, ex.Engine, ex.ImageHash, ex.RawText,
		ex.Identity, ex.Name, ex.FatherName, ex.Gender, ex.Country,
		ex.DateOfBirth, ex.DateOfIssue, ex.DateOfExpiry,
		ex.Confidence, ex.FilledFields, ex.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("failed to save extraction", "id", ex.ID, "error", err)
		return common.WrapError(err, "save extraction")
	}
	r.logger.Debug("extraction saved", "id", ex.ID, "filename", ex.Filename)
	return nil
}

func (r *extractionRepository) List(ctx context.Context, limit int) ([]*entity.Extraction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, selectExtractions, limit)
	if err != nil {
		r.logger.Error("failed to list extractions", "error", err)
		return nil, common.WrapError(err, "list extractions")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Warn("failed to close rows", "error", err)
		}
	}()

	var result []*entity.Extraction
	for rows.Next() {
		var ex entity.Extraction
		var id, createdAt string
		if err := rows.Scan(
			&id, &ex.Filename, &ex.Engine, &ex.ImageHash, &ex.RawText,
			&ex.Identity, &ex.Name, &ex.FatherName, &ex.Gender, &ex.Country,
			&ex.DateOfBirth, &ex.DateOfIssue, &ex.DateOfExpiry,
			&ex.Confidence, &ex.FilledFields, &createdAt,
		); err != nil {
			return nil, common.WrapError(err, "scan extraction")
		}
		ex.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, common.WrapError(err, "parse extraction id")
		}
		ex.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, common.WrapError(err, "parse extraction timestamp")
		}
		result = append(result, &ex)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate extractions")
	}
	return result, nil
}
