package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/services"
	"parcel/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
)

const (
	defaultHTTPPort          = "8080"
	defaultNotificationTopic = "parcel.notifications"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaNotificationTopic string
	RedisAddr              string
	OperationsAccountID    kernel.ID
	EscalationWarnAfter    time.Duration
	EscalationLockAfter    time.Duration
	Schedule               jobs.Schedule
	JobsEnabled            bool
}

// LoadConfig reads configuration in order: .env (if present), environment, command-line flags.
// Empty KAFKA_HOST selects the log notifier; empty REDIS_ADDR selects in-process job locks.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("warning: .env not loaded: %v", err)
	}

	schedule := jobs.DefaultSchedule()
	cfg := Config{
		HTTPPort:               envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaNotificationTopic: envOr("KAFKA_NOTIFICATION_TOPIC", defaultNotificationTopic),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		JobsEnabled:            true,
	}
	schedule.SettlementSpec = envOr("SETTLEMENT_CRON", schedule.SettlementSpec)
	schedule.EscalationSpec = envOr("ESCALATION_CRON", schedule.EscalationSpec)
	schedule.AssignmentSweepSpec = envOr("ASSIGNMENT_SWEEP_CRON", schedule.AssignmentSweepSpec)

	var err error
	if cfg.OperationsAccountID, err = envID("OPERATIONS_ACCOUNT_ID"); err != nil {
		return Config{}, err
	}
	if cfg.EscalationWarnAfter, err = envDuration("ESCALATION_WARN_AFTER", services.DefaultWarnAfter); err != nil {
		return Config{}, err
	}
	if cfg.EscalationLockAfter, err = envDuration("ESCALATION_LOCK_AFTER", services.DefaultLockAfter); err != nil {
		return Config{}, err
	}

	pflag.StringVarP(&cfg.HTTPPort, "port", "p", cfg.HTTPPort, "port to listen on")
	pflag.BoolVar(&cfg.JobsEnabled, "jobs", cfg.JobsEnabled, "run scheduled jobs in this process")
	pflag.Parse()

	cfg.Schedule = schedule
	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	for _, w := range cfg.Warnings() {
		log.Warnf("warning: %s", w)
	}
	return cfg, nil
}

// Warnings lists optional settings that are missing and the behavior they switch off.
func (c Config) Warnings() []string {
	var warnings []string
	if c.OperationsAccountID.IsZero() {
		warnings = append(warnings,
			"OPERATIONS_ACCOUNT_ID is not set: operations will not be alerted when no shipper is on duty")
	}
	return warnings
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %s", c.HTTPPort)
	}
	if c.EscalationWarnAfter <= 0 || c.EscalationLockAfter <= c.EscalationWarnAfter {
		return fmt.Errorf("invalid escalation thresholds: warn after %s, lock after %s",
			c.EscalationWarnAfter, c.EscalationLockAfter)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envID(key string) (kernel.ID, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	id, err := kernel.NewID(n)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return id, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
