package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database:   DatabaseConfig{Password: "secret"},
		JWT:        JWTConfig{Secret: "jwt-secret", AccessExpiration: "1h"},
		Attendance: AttendanceConfig{Timezone: "Asia/Jakarta", GracePeriod: 15 * time.Minute},
		Payroll:    PayrollConfig{TaxRate: decimal.RequireFromString("0.05")},
		Storage:    StorageConfig{Driver: StorageDriverPostgres},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "UTC", cfg.Attendance.Timezone)
	assert.Equal(t, 15*time.Minute, cfg.Attendance.GracePeriod)
	assert.Equal(t, []time.Weekday{time.Sunday}, cfg.Attendance.OffDays)
	assert.True(t, cfg.Payroll.TaxRate.IsZero())
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("ATTENDANCE_GRACE_PERIOD", "10m")
	t.Setenv("WEEKLY_OFF_DAYS", "Saturday, sunday")
	t.Setenv("PAYROLL_TAX_RATE", "0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "Asia/Jakarta", cfg.Attendance.Timezone)
	assert.Equal(t, 10*time.Minute, cfg.Attendance.GracePeriod)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.Attendance.OffDays)
	assert.True(t, cfg.Payroll.TaxRate.Equal(decimal.RequireFromString("0.1")))
}

func TestLoad_InvalidGracePeriod(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("ATTENDANCE_GRACE_PERIOD", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "ATTENDANCE_GRACE_PERIOD")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing db password", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: "DB_PASSWORD"},
		{name: "memory driver needs no db password", mutate: func(c *Config) {
			c.Database.Password = ""
			c.Storage.Driver = StorageDriverMemory
		}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: "STORAGE_DRIVER"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET_KEY"},
		{name: "bad timezone", mutate: func(c *Config) { c.Attendance.Timezone = "Mars/Olympus" }, wantErr: "APP_TIMEZONE"},
		{name: "tax above one", mutate: func(c *Config) { c.Payroll.TaxRate = decimal.NewFromInt(2) }, wantErr: "PAYROLL_TAX_RATE"},
		{name: "admin email without password", mutate: func(c *Config) { c.Admin.Email = "boss@garage.test" }, wantErr: "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays([]string{"none"})
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = ParseWeekdays([]string{"funday"})
	assert.Error(t, err)
}
