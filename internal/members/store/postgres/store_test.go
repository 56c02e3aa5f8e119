package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"lettergen/internal/members"
)

func TestPutUpsertsWithTTL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := &PGStore{DB: db}
	ttl := int64(1700000000)

	mock.ExpectExec("INSERT INTO members").
		WithArgs(members.ResourceTypeUser, "b@x.com", "B", sql.NullInt64{Int64: ttl, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Put(context.Background(), members.Row{
		ResourceType: members.ResourceTypeUser,
		ResourceKey:  "b@x.com",
		Name:         "B",
		TTL:          &ttl,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPutUpsertsWithoutTTL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := &PGStore{DB: db}

	mock.ExpectExec("INSERT INTO members").
		WithArgs(members.ResourceTypeUser, "a@x.com", "A", sql.NullInt64{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Put(context.Background(), members.Row{
		ResourceType: members.ResourceTypeUser,
		ResourceKey:  "a@x.com",
		Name:         "A",
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestListScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := &PGStore{DB: db}

	rows := sqlmock.NewRows([]string{"resource_type", "resource_key", "name", "ttl"}).
		AddRow("USER", "a@x.com", "A", nil).
		AddRow("USER", "b@x.com", "B", int64(1700000000))
	mock.ExpectQuery("SELECT resource_type, resource_key, name, ttl").
		WithArgs(members.ResourceTypeUser).
		WillReturnRows(rows)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %+v", got)
	}
	if got[0].TTL != nil {
		t.Fatalf("row a ttl = %v, want nil", got[0].TTL)
	}
	if got[1].TTL == nil || *got[1].TTL != 1700000000 {
		t.Fatalf("row b ttl = %v", got[1].TTL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
