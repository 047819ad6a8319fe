package db

import "testing"

func TestOpenAppliesMigrations(t *testing.T) {
	d, err := Open("file:dbmigrate?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"users", "trucks", "locations", "orders"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// Re-opening against the same database is a no-op, not a failure.
	d2, err := Open("file:dbmigrate?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = d2.Close()

	var applied int
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("expected at least one applied migration")
	}

	// Foreign keys are enforced on every connection.
	if _, err := d.Exec(`INSERT INTO trucks (user_id, year, color, plates, created_at, updated_at)
		VALUES (9999, '2020', 'red', 'FK-TEST', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	var count int
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no applied migrations after rollback, got %d", count)
	}

	var name string
	err = d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='orders'`).Scan(&name)
	if err == nil {
		t.Fatal("expected orders table to be dropped")
	}

	// Rolling back an empty ledger is a no-op.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback on empty ledger: %v", err)
	}
}
