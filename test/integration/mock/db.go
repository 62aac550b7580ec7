//go:build integration

package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spendsync/backend/internal/integration/persistence/model"
)

var (
	dbOnce sync.Once
	shared *Db
)

// Db is the process-wide in-memory SQLite store behind every scenario.
type Db struct {
	DbConn *gorm.DB
	tables map[string]any
}

// NewDb opens and migrates the store on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		shared = openDb()
	})
	return shared
}

func openDb() *Db {
	conn, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	conn.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("open sqlite: %v", err))
	}

	models := model.All()
	if err := gdb.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("migrate sqlite: %v", err))
	}

	tables := make(map[string]any, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("parse model %T: %v", m, err))
		}
		tables[stmt.Schema.Table] = m
	}

	return &Db{DbConn: gdb, tables: tables}
}

// ClearDB empties every migrated table.
func (d *Db) ClearDB() error {
	wipe := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
	for table, m := range d.tables {
		if err := wipe.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of rows in table, soft-deleted rows included.
func (d *Db) Count(table string) (int64, error) {
	m, ok := d.tables[table]
	if !ok {
		return 0, fmt.Errorf("table %q is not migrated", table)
	}
	var n int64
	err := d.DbConn.Unscoped().Model(m).Count(&n).Error
	return n, err
}
