package card_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"magiccards.GO/service/card"
)

// cardTestDB opens a temp-file sqlite DB with the catalog schema and the
// card attribute dictionary installed. A file DB keeps all pooled
// connections on the same tables.
func cardTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), fmt.Sprintf("card_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	if err := card.InstallSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := card.InstallCardAttributes(db, 2); err != nil {
		t.Fatalf("install attributes: %v", err)
	}
	return db
}
