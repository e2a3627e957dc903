package resultrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

const testColumns = "submission_id, problem_id, language, status, passed_count, total_count, result, judged_at"

func newTestRepository(t *testing.T) (*ResultRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), "judge"), mock
}

func TestMigrate(t *testing.T) {
	repo, mock := newTestRepository(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS judge\.submission_results`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Migrate(context.Background()))
}

func TestMigrate_Error(t *testing.T) {
	repo, mock := newTestRepository(t)
	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))

	err := repo.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestSaveResult_Upserts(t *testing.T) {
	repo, mock := newTestRepository(t)

	id := uuid.New()
	judgedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &domain.SubmissionResult{
		SubmissionID: id,
		ProblemID:    "two-sum",
		Language:     "python",
		Result:       domain.ExecutionResult{Status: domain.StatusAccepted, PassedCount: 2, TotalCount: 2},
		JudgedAt:     judgedAt,
	}
	payload, err := json.Marshal(result.Result)
	require.NoError(t, err)

	query := "INSERT INTO judge.submission_results (" + testColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) " +
		"ON CONFLICT (submission_id) DO UPDATE SET " +
		"status = EXCLUDED.status, passed_count = EXCLUDED.passed_count, total_count = EXCLUDED.total_count, " +
		"result = EXCLUDED.result, judged_at = EXCLUDED.judged_at"
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(id, "two-sum", "python", "ACCEPTED", 2, 2, payload, judgedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveResult(context.Background(), result))
}

func TestGetResult(t *testing.T) {
	repo, mock := newTestRepository(t)

	id := uuid.New()
	judgedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"status":"WRONG_ANSWER","passedCount":1,"totalCount":3,"failedTestIndex":1,"expectedOutput":"3","actualOutput":"4"}`)

	rows := sqlmock.NewRows([]string{
		"submission_id", "problem_id", "language", "status", "passed_count", "total_count", "result", "judged_at",
	}).AddRow(id.String(), "add", "go", "WRONG_ANSWER", 1, 3, payload, judgedAt)

	query := "SELECT " + testColumns + " FROM judge.submission_results WHERE submission_id = $1"
	mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(id).WillReturnRows(rows)

	got, err := repo.GetResult(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.SubmissionID)
	assert.Equal(t, "add", got.ProblemID)
	assert.Equal(t, "go", got.Language)
	assert.Equal(t, judgedAt, got.JudgedAt)
	assert.Equal(t, domain.StatusWrongAnswer, got.Result.Status)
	require.NotNil(t, got.Result.FailedTestIndex)
	assert.Equal(t, 1, *got.Result.FailedTestIndex)
	assert.Equal(t, "4", got.Result.ActualOutput)
}

func TestGetResult_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetResult(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, errs.ErrResultNotFound))
}

func TestGetResult_QueryError(t *testing.T) {
	repo, mock := newTestRepository(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetResult(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrResultNotFound))
}
