package config

import (
	"os"
	"strconv"
	"time"
)

type GradingConfig struct {
	StatementTimeout time.Duration
	MaxRows          int
}

func NewGradingConfig() *GradingConfig {
	timeoutSec, err := strconv.Atoi(os.Getenv("STATEMENT_TIMEOUT_SEC"))
	if err != nil {
		timeoutSec = 10
	}
	maxRows, err := strconv.Atoi(os.Getenv("QUERY_ROW_LIMIT"))
	if err != nil {
		maxRows = 1000
	}
	return &GradingConfig{
		StatementTimeout: time.Duration(timeoutSec) * time.Second,
		MaxRows:          maxRows,
	}
}
