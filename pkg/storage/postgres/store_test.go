package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// openTestSource connects to PG_DSN and recreates the employees table.
//
// It is destructive: any existing employees table is dropped.
func openTestSource(t *testing.T) *PoolSource {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set; skipping Postgres store tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src, err := NewPoolSource(ctx, dsn, PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(src.Close)

	schema, err := os.ReadFile("testdata/employees.sql")
	require.NoError(t, err)

	_, err = src.Pool().Exec(ctx, `DROP TABLE IF EXISTS employees`)
	require.NoError(t, err)
	_, err = src.Pool().Exec(ctx, string(schema))
	require.NoError(t, err)

	return src
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestStore_CreateThenGet(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Positive(t, id)

	rec, err := store.GetByID(ctx, idString(id))
	require.NoError(t, err)

	assert.Equal(t, id, rec["employee_id"])
	assert.Equal(t, "Ada", rec["first_name"])
	assert.Equal(t, "Lovelace", rec["last_name"])
	assert.Equal(t, "ada@x.com", rec["email"])

	hireDate, ok := rec["hire_date"].(time.Time)
	require.True(t, ok, "hire_date should scan as time.Time, got %T", rec["hire_date"])
	assert.WithinDuration(t, time.Now(), hireDate, 48*time.Hour)
}

func TestStore_CreateSplitsName(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	tests := []struct {
		name  string
		first string
		last  string
	}{
		{name: "Plato", first: "Plato", last: ""},
		{name: "Johann Sebastian Bach", first: "Johann", last: "Sebastian Bach"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.Create(ctx, domain.EmployeeInput{Name: tt.name, Email: "x@x.com"})
			require.NoError(t, err)

			rec, err := store.GetByID(ctx, idString(id))
			require.NoError(t, err)
			assert.Equal(t, tt.first, rec["first_name"])
			assert.Equal(t, tt.last, rec["last_name"])
		})
	}
}

func TestStore_List(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		_, err := store.Create(ctx, domain.EmployeeInput{Name: name, Email: "e@x.com"})
		require.NoError(t, err)
	}

	records, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Contains(t, rec, "employee_id")
		assert.Contains(t, rec, "first_name")
		assert.Contains(t, rec, "last_name")
		assert.Contains(t, rec, "email")
		assert.Contains(t, rec, "hire_date")
	}
}

func TestStore_UpdateKeepsHireDate(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)

	_, err = src.Pool().Exec(ctx, `UPDATE employees SET hire_date = DATE '2001-02-03' WHERE employee_id = $1`, id)
	require.NoError(t, err)

	in := domain.EmployeeInput{Name: "Grace Hopper", Email: "g@x.com"}
	require.NoError(t, store.UpdateByID(ctx, idString(id), in))
	// same update twice leaves the same state
	require.NoError(t, store.UpdateByID(ctx, idString(id), in))

	rec, err := store.GetByID(ctx, idString(id))
	require.NoError(t, err)
	assert.Equal(t, "Grace", rec["first_name"])
	assert.Equal(t, "Hopper", rec["last_name"])
	assert.Equal(t, "g@x.com", rec["email"])
	assert.Equal(t, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), rec["hire_date"])
}

func TestStore_DeleteThenGet(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, idString(id)))
	require.NoError(t, store.DeleteByID(ctx, idString(id)))

	_, err = store.GetByID(ctx, idString(id))
	assert.True(t, domain.IsNotFound(err))
}

func TestStore_OpaqueIDs(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	id, err := store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)
	canonical := idString(id)

	tests := []struct {
		name  string
		id    string
		found bool
	}{
		{name: "canonical", id: canonical, found: true},
		{name: "leading zeros", id: "00" + canonical, found: true},
		{name: "explicit sign", id: "+" + canonical, found: true},
		{name: "surrounding spaces", id: " " + canonical + " ", found: true},
		{name: "non-numeric", id: "abc", found: false},
		{name: "numeric prefix", id: canonical + "abc", found: false},
		{name: "empty", id: "", found: false},
		{name: "too many digits", id: "12345678901234567890", found: false},
		{name: "absent", id: "999999", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := store.GetByID(ctx, tt.id)
			if !tt.found {
				assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, rec["employee_id"])
		})
	}

	// ids that match nothing are silent no-ops
	assert.NoError(t, store.UpdateByID(ctx, "abc", domain.EmployeeInput{Name: "A B"}))
	assert.NoError(t, store.DeleteByID(ctx, "abc"))

	require.NoError(t, store.UpdateByID(ctx, "0"+canonical, domain.EmployeeInput{Name: "Grace Hopper", Email: "g@x.com"}))
	rec, err := store.GetByID(ctx, canonical)
	require.NoError(t, err)
	assert.Equal(t, "Grace", rec["first_name"])

	require.NoError(t, store.DeleteByID(ctx, "+"+canonical))
	_, err = store.GetByID(ctx, canonical)
	assert.True(t, domain.IsNotFound(err))
}

func TestStore_IDLookupUsesPrimaryKey(t *testing.T) {
	src := openTestSource(t)
	ctx := context.Background()

	_, err := src.Pool().Exec(ctx, `INSERT INTO employees (first_name, email)
SELECT 'e' || g, 'e' || g || '@x.com' FROM generate_series(1, 5000) g`)
	require.NoError(t, err)
	_, err = src.Pool().Exec(ctx, `ANALYZE employees`)
	require.NoError(t, err)

	var plan string
	err = src.Pool().QueryRow(ctx, `EXPLAIN (COSTS OFF) `+getEmployeeSQL, pgx.NamedArgs{"id": "42"}).Scan(&plan)
	require.NoError(t, err)
	assert.Contains(t, plan, "employees_pkey")
}

func TestStore_ReleasesSessionOnFailure(t *testing.T) {
	src := openTestSource(t)
	store := NewStore(src)
	ctx := context.Background()

	_, err := src.Pool().Exec(ctx, `DROP TABLE employees`)
	require.NoError(t, err)

	_, err = store.List(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.KindDataAccess, domain.KindOf(err))

	pe, ok := AsPgError(err)
	require.True(t, ok)
	assert.Equal(t, UndefinedTableCode, pe.Code)

	_, err = store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace"})
	assert.Equal(t, domain.KindDataAccess, domain.KindOf(err))

	assert.Equal(t, int32(0), src.Pool().Stat().AcquiredConns())
}

func TestStore_DirectSessions(t *testing.T) {
	pooled := openTestSource(t)

	src, err := NewConnSource(os.Getenv("PG_DSN"))
	require.NoError(t, err)
	assert.Equal(t, "direct", src.Mode())

	store := NewStore(src, WithQueryTimeout(10*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	id, err := store.Create(ctx, domain.EmployeeInput{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)

	rec, err := store.GetByID(ctx, idString(id))
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec["first_name"])

	assert.Equal(t, int32(0), pooled.Pool().Stat().AcquiredConns())
}

func TestStore_OpenFailure(t *testing.T) {
	src, err := NewConnSource("postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	require.NoError(t, err)

	store := NewStore(src)
	_, err = store.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindDataAccess, domain.KindOf(err))
}

func TestNewSource_RequiresDSN(t *testing.T) {
	_, err := NewSource(context.Background(), "", true, PoolOptions{})
	assert.Error(t, err)

	_, err = NewSource(context.Background(), "", false, PoolOptions{})
	assert.Error(t, err)
}
