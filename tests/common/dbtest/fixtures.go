//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type ClassRow struct {
	Name            string
	InstructorName  string
	InstructorEmail string
	PriceCents      int64
	AvailableSeat   int
	Status          string
}

func DefaultClassRow() ClassRow {
	return ClassRow{
		Name:            "Guitar101",
		InstructorName:  "Dana Reyes",
		InstructorEmail: "dana@example.com",
		PriceCents:      4900,
		AvailableSeat:   10,
		Status:          "Approved",
	}
}

func CreateTestClass(t *testing.T, db DBLike, row ClassRow) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO classes (id, name, instructor_name, instructor_email, price_cents, available_seat, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, row.Name, row.InstructorName, row.InstructorEmail, row.PriceCents, row.AvailableSeat, row.Status)
	require.NoError(t, err)
	return id
}

func CreateTestSelection(t *testing.T, db DBLike, studentEmail string, classID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO selections (id, student_email, class_id, class_name, price_cents)
		SELECT $1, $2, id, name, price_cents FROM classes WHERE id = $3`,
		id, studentEmail, classID)
	require.NoError(t, err)
	return id
}

func AvailableSeat(t *testing.T, db DBLike, classID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT available_seat FROM classes WHERE id = $1", classID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE "+where, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates every table of the public schema
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
