package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders_and_escrows.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_quote_id ON orders (quote_id)",
		"FOREIGN KEY (quote_id) REFERENCES quotes(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_escrows_order_id ON escrows (order_id)",
		"CHECK (total_minor >= 0)",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
