package cmd

import (
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TimeZone is the IANA zone that day boundaries and cron schedules use.
	TimeZone           string
	OrderingWindowOpen string
	SummaryCron        string
	HTTPRateLimit      string

	KafkaBrokers     string
	KafkaTopicPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       string

	SMTPHost          string
	SMTPPort          string
	SMTPUser          string
	SMTPPassword      string
	SMTPFrom          string
	SMTPRatePerSecond string

	AdminEmails      string
	DepartmentEmails string
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Location loads TimeZone; empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// WindowInitiallyOpen is the ordering-window flag at startup, false unless set.
func (c Config) WindowInitiallyOpen() bool {
	open, err := strconv.ParseBool(c.OrderingWindowOpen)
	return err == nil && open
}

func (c Config) RedisDatabase() int {
	db, err := strconv.Atoi(c.RedisDB)
	if err != nil {
		return 0
	}
	return db
}

func (c Config) SMTPRate() float64 {
	return parseFloat(c.SMTPRatePerSecond)
}

// RequestsPerSecond is the per-client HTTP rate limit; zero disables it.
func (c Config) RequestsPerSecond() float64 {
	return parseFloat(c.HTTPRateLimit)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
