// Command migration applies the league-stats schema in db/migrations.
//
//	migration up | down [n] | version | force <v> | goto <v>
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
	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

var migrationDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewJSONWriter(os.Stderr, cfg.LogLevel).With("service", cfg.ServiceName+"-migration")
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("migration command failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, command string, args []string) error {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return errors.New("DB_URL is required")
	}
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "up":
		return applied(logger, m.Up(), "migrations applied", "source", source)
	case "down":
		steps := 1
		if len(args) > 0 {
			if steps, err = strconv.Atoi(strings.TrimSpace(args[0])); err != nil || steps <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
		}
		return applied(logger, m.Steps(-steps), "migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none\ndirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	case "force":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	case "goto", "migrate":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		return applied(logger, m.Migrate(version), "migrated", "version", version)
	default:
		usage()
		return nil
	}
}

// applied treats ErrNoChange as success.
func applied(logger *logging.Logger, err error, msg string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
		return nil
	case err != nil:
		return err
	default:
		logger.Info(msg, args...)
		return nil
	}
}

func versionArg(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("a target version argument is required")
	}
	value, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return uint(value), nil
}

func migrationsDir() (string, error) {
	candidates := migrationDirCandidates
	if dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); dir != "" {
		candidates = append([]string{dir}, candidates...)
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR and %s)", strings.Join(migrationDirCandidates, ", "))
}

func usage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force <v>|goto <v>>\n", name)
	os.Exit(2)
}
