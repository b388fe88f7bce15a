package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of one step, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", got, err)
	}
	for _, in := range []string{"0", "-1", "x"} {
		if _, err := parseSteps([]string{in}); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if got, err := parseVersion("1771776034"); err != nil || got != 1771776034 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if _, err := parseVersion("-5"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected invalid target to fail")
	}
}

func TestOpenSource_Embedded(t *testing.T) {
	src, origin, err := openSource("")
	if err != nil {
		t.Fatalf("open embedded: %v", err)
	}
	defer src.Close()

	if origin != "embedded" {
		t.Fatalf("expected embedded origin, got %q", origin)
	}
	if first, err := src.First(); err != nil || first != 1771776034 {
		t.Fatalf("expected first version 1771776034, got %d err=%v", first, err)
	}
}

func TestOpenSource_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "7_favorites.up.sql"), []byte("SELECT 1;"), 0o600); err != nil {
		t.Fatalf("write migration: %v", err)
	}

	src, origin, err := openSource(dir)
	if err != nil {
		t.Fatalf("open dir: %v", err)
	}
	defer src.Close()

	if !strings.HasPrefix(origin, "file://") {
		t.Fatalf("expected file origin, got %q", origin)
	}
	if first, err := src.First(); err != nil || first != 7 {
		t.Fatalf("expected first version 7, got %d err=%v", first, err)
	}

	if _, _, err := openSource(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected missing dir to fail")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run(logging.NewNop(), "sideways", nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SAMOSCORE_TEST_FLAG", " Yes ")
	if !envBool("SAMOSCORE_TEST_FLAG") {
		t.Fatalf("expected yes to be true")
	}
	_ = os.Unsetenv("SAMOSCORE_TEST_FLAG")
	if envBool("SAMOSCORE_TEST_FLAG") {
		t.Fatalf("expected unset flag to be false")
	}
}
