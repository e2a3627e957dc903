// Package resultrepository stores submission verdicts in PostgreSQL
package resultrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
	querybuilder "gitlab.com/codejudge.net/internal/utils"
)

var _ secondary.ResultRepository = (*ResultRepository)(nil)

// ResultRepository implements the ResultRepository interface with PostgreSQL
type ResultRepository struct {
	db     *sqlx.DB
	schema string
	logger primary.Logger
}

// New creates a new PostgreSQL result repository
func New(db *sqlx.DB, logger primary.Logger, schema string) *ResultRepository {
	return &ResultRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

type resultRow struct {
	SubmissionID uuid.UUID `db:"submission_id"`
	ProblemID    string    `db:"problem_id"`
	Language     string    `db:"language"`
	Status       string    `db:"status"`
	PassedCount  int       `db:"passed_count"`
	TotalCount   int       `db:"total_count"`
	Result       []byte    `db:"result"`
	JudgedAt     time.Time `db:"judged_at"`
}

// Migrate creates the verdict table when it does not exist
func (r *ResultRepository) Migrate(ctx context.Context) error {
	tbl := domain.GetResultTable()
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.%s (
			%s UUID PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s INTEGER NOT NULL,
			%s INTEGER NOT NULL,
			%s JSONB NOT NULL,
			%s TIMESTAMPTZ NOT NULL
		)`,
		r.schema, tbl.TableName(),
		tbl.SubmissionID, tbl.ProblemID, tbl.Language, tbl.Status,
		tbl.PassedCount, tbl.TotalCount, tbl.Result, tbl.JudgedAt,
	)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to migrate result table", "error", err)
		return fmt.Errorf("failed to migrate result table: %w", err)
	}
	return nil
}

// SaveResult upserts a submission verdict
func (r *ResultRepository) SaveResult(ctx context.Context, result *domain.SubmissionResult) error {
	payload, err := json.Marshal(result.Result)
	if err != nil {
		r.logger.Error("Failed to marshal result", "error", err)
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	tbl := domain.GetResultTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			result.SubmissionID,
			result.ProblemID,
			result.Language,
			string(result.Result.Status),
			result.Result.PassedCount,
			result.Result.TotalCount,
			payload,
			result.JudgedAt,
		).
		OnConflict(tbl.SubmissionID).
		SetExclude(tbl.Status, tbl.PassedCount, tbl.TotalCount, tbl.Result, tbl.JudgedAt).
		Build()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to save result", "submissionId", result.SubmissionID, "error", err)
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResult retrieves a verdict by submission ID
func (r *ResultRepository) GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error) {
	tbl := domain.GetResultTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.SubmissionID), submissionID).
		Build()

	var row resultRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("submission %s: %w", submissionID, errs.ErrResultNotFound)
		}
		r.logger.Error("Failed to get result", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result domain.ExecutionResult
	if err := json.Unmarshal(row.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &domain.SubmissionResult{
		SubmissionID: row.SubmissionID,
		ProblemID:    row.ProblemID,
		Language:     row.Language,
		Result:       result,
		JudgedAt:     row.JudgedAt,
	}, nil
}
