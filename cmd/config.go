package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"
)

const (
	HistoryStoreMemory   = "memory"
	HistoryStorePostgres = "postgres"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	QueueCapacity    int
	DeliveryLeadTime time.Duration
	ETAPerUnit       time.Duration

	DispatchSchedule string
	ReportSchedule   string

	SubmitRateLimit float64
	SubmitRateBurst int

	HistoryStore string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
}

// DefaultConfig is used for every key that is unset.
func DefaultConfig() Config {
	return Config{
		AppEnv:           "development",
		HTTPPort:         "8080",
		QueueCapacity:    100,
		DeliveryLeadTime: 30 * time.Minute,
		ETAPerUnit:       2 * time.Minute,
		DispatchSchedule: jobs.DefaultDispatchSchedule,
		ReportSchedule:   jobs.DefaultReportSchedule,
		SubmitRateLimit:  5,
		SubmitRateBurst:  10,
		HistoryStore:     HistoryStoreMemory,
		DBPort:           "5432",
		DBSslMode:        "disable",
	}
}

// LoadConfig reads the configuration through lookup (os.LookupEnv in
// production) and reports every malformed value at once.
func LoadConfig(lookup func(key string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	var problems []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = f
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
				return
			}
			*dst = d
		}
	}

	str("APP_ENV", &cfg.AppEnv)
	str("HTTP_PORT", &cfg.HTTPPort)
	integer("QUEUE_CAPACITY", &cfg.QueueCapacity)
	duration("DELIVERY_LEAD_TIME", &cfg.DeliveryLeadTime)
	duration("ETA_PER_UNIT", &cfg.ETAPerUnit)
	str("DISPATCH_SCHEDULE", &cfg.DispatchSchedule)
	str("REPORT_SCHEDULE", &cfg.ReportSchedule)
	float("SUBMIT_RATE_LIMIT", &cfg.SubmitRateLimit)
	integer("SUBMIT_RATE_BURST", &cfg.SubmitRateBurst)
	str("HISTORY_STORE", &cfg.HistoryStore)
	str("DB_HOST", &cfg.DBHost)
	str("DB_PORT", &cfg.DBPort)
	str("DB_USER", &cfg.DBUser)
	str("DB_PASSWORD", &cfg.DBPassword)
	str("DB_NAME", &cfg.DBName)
	str("DB_SSLMODE", &cfg.DBSslMode)

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return cfg, nil
}

func (c Config) validate() []error {
	var problems []error
	if c.QueueCapacity <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("QUEUE_CAPACITY", c.QueueCapacity, 1, "unbounded"))
	}
	if c.DeliveryLeadTime < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DELIVERY_LEAD_TIME", c.DeliveryLeadTime, 0, "unbounded"))
	}
	if c.ETAPerUnit < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("ETA_PER_UNIT", c.ETAPerUnit, 0, "unbounded"))
	}
	switch c.HistoryStore {
	case HistoryStoreMemory:
	case HistoryStorePostgres:
		if c.DBHost == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("HISTORY_STORE",
			fmt.Errorf("%q is neither %q nor %q", c.HistoryStore, HistoryStoreMemory, HistoryStorePostgres)))
	}
	return problems
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// IsProduction selects the JSON log encoder.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
