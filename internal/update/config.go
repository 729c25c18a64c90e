package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath            string
	GoalsSnapshotPath string
	TasksSnapshotPath string
	UIDensity         int
}

func DefaultRuntimeConfig() RuntimeConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".tuskly")
	return RuntimeConfig{
		DBPath:            filepath.Join(base, "tuskly.db"),
		GoalsSnapshotPath: filepath.Join(base, "goals.snapshot"),
		TasksSnapshotPath: filepath.Join(base, "tasks.snapshot"),
		UIDensity:         1,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TUSKLY_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TUSKLY_GOALS_SNAPSHOT"); ok {
		cfg.GoalsSnapshotPath = v
	}
	if v, ok := getEnvString("TUSKLY_TASKS_SNAPSHOT"); ok {
		cfg.TasksSnapshotPath = v
	}
	if v, ok := getEnvInt("TUSKLY_UI_DENSITY"); ok && v > 0 {
		cfg.UIDensity = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
