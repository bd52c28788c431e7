package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/roster-wayback/internal/app"
	"github.com/riskibarqy/roster-wayback/internal/config"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
)

var migrationsDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).With("service", cfg.ServiceName+"-migration")
	defer func() { _ = logger.Sync() }()

	migrationsDir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		return 1
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, app.NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		logger.Error("create migrator", "error", err)
		return 1
	}
	defer closeMigrator(m, logger)

	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	switch cmd {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			logger.Error("apply migrations", "error", err)
			return 1
		}
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			logger.Error("parse steps", "error", err)
			return 2
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			logger.Error("roll back migrations", "error", err)
			return 1
		}
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return 0
		}
		if err != nil {
			logger.Error("read version", "error", err)
			return 1
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(args) < 2 {
			logger.Error("force requires a version argument")
			return 2
		}
		version, err := parseVersion(args[1])
		if err != nil {
			logger.Error("parse version", "error", err)
			return 2
		}
		if err := m.Force(version); err != nil {
			logger.Error("force version", "version", version, "error", err)
			return 1
		}
		logger.Info("forced version", "version", version)
	case "goto", "migrate":
		if len(args) < 2 {
			logger.Error("goto requires a target version argument")
			return 2
		}
		target, err := parseTarget(args[1])
		if err != nil {
			logger.Error("parse target", "error", err)
			return 2
		}
		if err := ignoreNoChange(m.Migrate(target)); err != nil {
			logger.Error("migrate", "target", target, "error", err)
			return 1
		}
		logger.Info("migrated", "version", target)
	default:
		printUsage()
		return 2
	}

	return 0
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir(overrides ...string) (string, error) {
	candidates := append(append([]string{}, overrides...), migrationsDirCandidates...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, %s)", strings.Join(migrationsDirCandidates, ", "))
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 1\n", name)
}
