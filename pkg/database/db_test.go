package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

func TestNewDB_SQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := NewDB(cfg, "error", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, RunMigrations(db, config.DriverSQLite, zap.NewNop()))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&model.IntakeLog{}, "idx_intake_occurrence"))

	// Running twice is a no-op.
	require.NoError(t, RunMigrations(db, config.DriverSQLite, zap.NewNop()))
}

func TestRunMigrations_SQLiteAcceptsAccounts(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "accounts.db"),
	}
	db, err := NewDB(cfg, "error", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	require.NoError(t, RunMigrations(db, config.DriverSQLite, zap.NewNop()))

	user := &model.User{Name: "Maria", Phone: "+351900000001", PinHash: "x", Language: "pt", WakeTime: "07:00", SleepTime: "22:00"}
	require.NoError(t, db.Create(user).Error)
	caregiver := &model.Caregiver{Email: "ana@example.com", PasswordHash: "x", Name: "Ana", Phone: "+351911111111", Role: model.CaregiverFamily}
	require.NoError(t, db.Create(caregiver).Error)
	link := &model.CaregiverUser{CaregiverID: caregiver.CaregiverID, UserID: user.UserID, Relationship: "daughter", NotifyAlerts: true}
	require.NoError(t, db.Create(link).Error)

	// A second user must not collide with anything on caregiver_users.
	other := &model.User{Name: "João", Phone: "+351900000002", PinHash: "x", Language: "pt", WakeTime: "07:00", SleepTime: "22:00"}
	require.NoError(t, db.Create(other).Error)
}

func TestNewDB_UnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, "error", zap.NewNop())
	assert.Error(t, err)
}

func TestMigrationFilesEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var up, down int
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".sql":
			if matched, _ := filepath.Match("*.up.sql", e.Name()); matched {
				up++
			} else {
				down++
			}
		}
	}
	assert.Equal(t, up, down, "every up migration needs a down migration")
	assert.Positive(t, up)
}
