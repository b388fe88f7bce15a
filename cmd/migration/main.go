package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/NachoSamo/SamoScore/db"
	"github.com/NachoSamo/SamoScore/internal/platform/dburl"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

var errUsage = errors.New("usage")

// command runs one subcommand against an open migrator.
type command func(logger *logging.Logger, m *migrate.Migrate, args []string) error

var commands = map[string]command{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo).Named("migration")
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("load .env failed", "error", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(logger, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(logger *logging.Logger, name string, args []string) error {
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if envBool("DB_DISABLE_PREPARED_BINARY_RESULT") {
		dbURL = dburl.DisablePreparedBinary(dbURL)
	}

	src, origin, err := openSource(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("samoscore", src, dbURL)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(logger, m)

	logger = logger.With("source", origin, "db", dburl.Redact(dbURL))
	return cmd(logger, m, args)
}

// openSource reads migrations from dir when set and from the embedded
// schema otherwise. origin names the chosen source for logs.
func openSource(dir string) (source.Driver, string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		src, err := iofs.New(db.Migrations, "migrations")
		if err != nil {
			return nil, "", fmt.Errorf("open embedded migrations: %w", err)
		}
		return src, "embedded", nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve migrations dir %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("migrations dir %q is not a directory", abs)
	}
	src, err := iofs.New(os.DirFS(abs), ".")
	if err != nil {
		return nil, "", fmt.Errorf("open migrations dir %q: %w", abs, err)
	}
	return src, "file://" + filepath.ToSlash(abs), nil
}

func runUp(logger *logging.Logger, m *migrate.Migrate, _ []string) error {
	if err := ignoreNoChange(logger, m.Up()); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(logger *logging.Logger, m *migrate.Migrate, args []string) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(logger, m.Steps(-steps)); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(_ *logging.Logger, m *migrate.Migrate, _ []string) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

func runForce(logger *logging.Logger, m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func runGoto(logger *logging.Logger, m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(logger, m.Migrate(target)); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
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

func ignoreNoChange(logger *logging.Logger, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(logger *logging.Logger, m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db failed", "error", dbErr)
	}
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <%s> [args]\n", bin, strings.Join(names, "|"))
	fmt.Fprintln(os.Stderr, "migrations are read from MIGRATIONS_DIR when set, otherwise from the embedded schema")
	fmt.Fprintf(os.Stderr, "  %s up\n", bin)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", bin)
	fmt.Fprintf(os.Stderr, "  %s force 1771776034\n", bin)
}
