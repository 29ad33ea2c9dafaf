package config

import (
	"os"
	"strconv"
	"time"
)

type SchedulerConfig struct {
	// RunHourUTC is when daily generation fires; UTC 0:00 is KST 9:00.
	RunHourUTC     int
	RetentionDays  int
	CheckInterval  time.Duration
	ProblemDir     string
	ProblemsPerDay int
}

func NewSchedulerConfig() *SchedulerConfig {
	runHour, err := strconv.Atoi(os.Getenv("RUN_HOUR"))
	if err != nil {
		runHour = 0
	}
	retentionDays, err := strconv.Atoi(os.Getenv("RETENTION_DAYS"))
	if err != nil {
		retentionDays = 30
	}
	checkIntervalSec, err := strconv.Atoi(os.Getenv("SCHEDULER_CHECK_INTERVAL_SEC"))
	if err != nil {
		checkIntervalSec = 60
	}
	problemDir := os.Getenv("PROBLEM_DIR")
	if problemDir == "" {
		problemDir = "problems/daily"
	}
	problemsPerDay, err := strconv.Atoi(os.Getenv("PROBLEMS_PER_DAY"))
	if err != nil {
		problemsPerDay = 6
	}
	return &SchedulerConfig{
		RunHourUTC:     runHour,
		RetentionDays:  retentionDays,
		CheckInterval:  time.Duration(checkIntervalSec) * time.Second,
		ProblemDir:     problemDir,
		ProblemsPerDay: problemsPerDay,
	}
}
