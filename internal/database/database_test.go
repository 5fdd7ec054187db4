package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/empmonitor/core/internal/config"
	"github.com/empmonitor/core/internal/models"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	for _, model := range []interface{}{
		&models.Account{}, &models.User{}, &models.WorkSession{},
		&models.ManualLog{}, &models.Screenshot{}, &models.Blob{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("table for %T not created", model)
		}
	}

	if err := Ping(context.Background(), db, time.Second); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestPingClosedDB(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := Ping(context.Background(), db, time.Second); err == nil {
		t.Error("expected ping on closed db to fail")
	}
}

func TestTablePrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := config.Default()
	cfg.Env = "test"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = path
	cfg.Database.TablePrefix = "u968537179_"
	cfg.DSN = path

	db, err := Connect(cfg, true)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	for _, table := range []string{
		"u968537179_av_master_account", "u968537179_av_user", "u968537179_tblsession",
		"u968537179_av_manual_logs", "u968537179_av_tblsnap", "u968537179_av_blob",
	} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}
	if db.Migrator().HasTable("av_user") {
		t.Error("unprefixed av_user should not exist")
	}

	if err := db.Create(&models.WorkSession{UserEmail: "a@example.com", StartTime: time.Now(), Status: models.SessionActive}).Error; err != nil {
		t.Fatalf("insert session: %v", err)
	}
	var count int64
	if err := db.Table("u968537179_tblsession").Count(&count).Error; err != nil || count != 1 {
		t.Errorf("prefixed session rows = %d, err = %v", count, err)
	}
}
