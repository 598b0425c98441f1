package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"medfeedback/internal/model"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY,
	patient_id   TEXT NOT NULL,
	overall      TEXT NOT NULL,
	departments  TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	doc          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_patient ON submissions(patient_id, submitted_at);
CREATE INDEX IF NOT EXISTS idx_submissions_overall ON submissions(overall, submitted_at);
`

// Fixed-width so that submitted_at sorts lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

var _ SubmissionRepo = (*SQLiteSubmissionRepo)(nil)

// SQLiteSubmissionRepo keeps submissions in a local SQLite file, for
// single-node or offline deployments without MongoDB.
type SQLiteSubmissionRepo struct {
	db *sql.DB
}

// NewSQLiteSubmissionRepo opens (and migrates) the database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteSubmissionRepo(path string) (*SQLiteSubmissionRepo, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteSubmissionRepo{db: db}, nil
}

// Close releases the database handle
func (r *SQLiteSubmissionRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteSubmissionRepo) Create(ctx context.Context, sub *model.Submission) (string, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	doc, err := json.Marshal(sub)
	if err != nil {
		return "", err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO submissions (id, patient_id, overall, departments, submitted_at, doc) VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.PatientID, string(sub.Category.Overall), packDepartments(sub.Departments),
		sub.SubmittedAt.UTC().Format(sqliteTimeLayout), string(doc),
	)
	if err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (r *SQLiteSubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM submissions WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSubmission(doc)
}

func (r *SQLiteSubmissionRepo) List(ctx context.Context, filter model.SubmissionFilter) ([]*model.Submission, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.PatientID != "" {
		where = append(where, "patient_id = ?")
		args = append(args, filter.PatientID)
	}
	if filter.Overall != "" {
		where = append(where, "overall = ?")
		args = append(args, string(filter.Overall))
	}
	if filter.DepartmentID != "" {
		where = append(where, "departments LIKE ?")
		args = append(args, "%,"+filter.DepartmentID+",%")
	}

	query := `SELECT doc FROM submissions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY submitted_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*model.Submission{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		sub, err := decodeSubmission(doc)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *SQLiteSubmissionRepo) Delete(ctx context.Context, id, patientID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ? AND patient_id = ?`, id, patientID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// packDepartments stores IDs as ",a,b," so a LIKE on ",id," matches whole IDs.
func packDepartments(ids []string) string {
	return "," + strings.Join(ids, ",") + ","
}

func decodeSubmission(doc string) (*model.Submission, error) {
	var sub model.Submission
	if err := json.Unmarshal([]byte(doc), &sub); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &sub, nil
}
