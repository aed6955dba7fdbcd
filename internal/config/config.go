package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pharma-scheduler/internal/timezone"
)

type Config struct {
	Env        string `mapstructure:"ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	Timezone   string `mapstructure:"TIMEZONE"`

	AgendaFile     string `mapstructure:"AGENDA_FILE"`
	MinLeadHours   int    `mapstructure:"MIN_LEAD_HOURS"`
	ScheduleFile   string `mapstructure:"SCHEDULE_FILE"`
	SeedSampleData bool   `mapstructure:"SEED_SAMPLE_DATA"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	OperatorKeyHash string `mapstructure:"OPERATOR_KEY_HASH"`

	AuditDBDriver   string `mapstructure:"AUDIT_DB_DRIVER"`
	DBUrl           string `mapstructure:"DATABASE_URL"`
	AuditSQLitePath string `mapstructure:"AUDIT_SQLITE_PATH"`

	RedisURL   string        `mapstructure:"REDIS_URL"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	S3Bucket           string `mapstructure:"S3_BUCKET"`
	S3Region           string `mapstructure:"S3_REGION"`
	S3Prefix           string `mapstructure:"S3_PREFIX"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	// Filled from MIN_LEAD_HOURS and SCHEDULE_FILE.
	Schedule domain.Schedule `mapstructure:"-"`
	HighCost []string        `mapstructure:"-"`
}

var keys = []string{
	"ENV", "SERVER_PORT", "LOG_LEVEL", "TIMEZONE",
	"AGENDA_FILE", "MIN_LEAD_HOURS", "SCHEDULE_FILE", "SEED_SAMPLE_DATA",
	"JWT_SECRET", "OPERATOR_KEY_HASH",
	"AUDIT_DB_DRIVER", "DATABASE_URL", "AUDIT_SQLITE_PATH",
	"REDIS_URL", "SESSION_TTL",
	"S3_BUCKET", "S3_REGION", "S3_PREFIX", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", timezone.DefaultTimezone)
	v.SetDefault("AGENDA_FILE", "data/agenda.xlsx")
	v.SetDefault("MIN_LEAD_HOURS", 2)
	v.SetDefault("SEED_SAMPLE_DATA", false)
	v.SetDefault("AUDIT_DB_DRIVER", "sqlite")
	v.SetDefault("AUDIT_SQLITE_PATH", "data/audit.db")
	v.SetDefault("SESSION_TTL", "15m")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "agenda")

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Schedule = domain.DefaultSchedule()
	cfg.Schedule.MinLead = time.Duration(cfg.MinLeadHours) * time.Hour
	cfg.HighCost = append([]string(nil), domain.DefaultHighCostMedications...)

	if cfg.ScheduleFile != "" {
		if err := cfg.applyScheduleFile(cfg.ScheduleFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ===============================
// Schedule file
// ===============================

type scheduleFile struct {
	Weekday  *domain.Window `yaml:"weekday"`
	Saturday *domain.Window `yaml:"saturday"`
	Lunch    *struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"lunch"`
	MinLead  string   `yaml:"min_lead"`
	HighCost []string `yaml:"high_cost"`
}

// applyScheduleFile overrides the parts of the schedule present in the file.
func (c *Config) applyScheduleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schedule file: %w", err)
	}

	var sf scheduleFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse schedule file %s: %w", path, err)
	}

	if sf.Weekday != nil {
		c.Schedule.Weekday = *sf.Weekday
	}
	if sf.Saturday != nil {
		c.Schedule.Saturday = *sf.Saturday
	}
	if sf.Lunch != nil {
		c.Schedule.LunchStart = sf.Lunch.Start
		c.Schedule.LunchEnd = sf.Lunch.End
	}
	if sf.MinLead != "" {
		d, err := time.ParseDuration(sf.MinLead)
		if err != nil {
			return fmt.Errorf("schedule file min_lead: %w", err)
		}
		c.Schedule.MinLead = d
	}
	if len(sf.HighCost) > 0 {
		c.HighCost = sf.HighCost
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Schedule.Check(); err != nil {
		return err
	}
	if !timezone.IsValid(c.Timezone) {
		return fmt.Errorf("unknown TIMEZONE %q", c.Timezone)
	}
	switch c.AuditDBDriver {
	case "sqlite", "none":
	case "postgres":
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when AUDIT_DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown AUDIT_DB_DRIVER %q", c.AuditDBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.AgendaFile == "" {
		return fmt.Errorf("AGENDA_FILE is required")
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
