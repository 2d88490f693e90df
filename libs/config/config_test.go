package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("COSTCALC_A=from-file\nCOSTCALC_B=file-b\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("COSTCALC_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("COSTCALC_B") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := String("COSTCALC_A", ""); got != "from-env" {
		t.Fatalf("expected env value to win, got %q", got)
	}
	if got := String("COSTCALC_B", ""); got != "file-b" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestTypedHelpers(t *testing.T) {
	t.Setenv("COSTCALC_INT", "42")
	t.Setenv("COSTCALC_BAD_INT", "x")
	t.Setenv("COSTCALC_BOOL", "yes")
	t.Setenv("COSTCALC_LIST", " a, ,b ")
	t.Setenv("COSTCALC_SECS", "3")

	if Int("COSTCALC_INT", 1) != 42 || Int("COSTCALC_BAD_INT", 7) != 7 {
		t.Fatal("Int mismatch")
	}
	if !Bool("COSTCALC_BOOL", false) || Bool("COSTCALC_UNSET", false) {
		t.Fatal("Bool mismatch")
	}
	if got := List("COSTCALC_LIST", ""); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List mismatch: %v", got)
	}
	if Seconds("COSTCALC_SECS", time.Minute) != 3*time.Second {
		t.Fatal("Seconds mismatch")
	}
	if _, err := Port("COSTCALC_INT_PORT", "70000"); err == nil {
		t.Fatal("expected invalid port error")
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("COSTCALC_RATIO", "0.25")
	t.Setenv("COSTCALC_RATIO_HIGH", "1.5")
	t.Setenv("COSTCALC_RATIO_BAD", "half")

	if got := Float("COSTCALC_RATIO", 1, 0, 1); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := Float("COSTCALC_RATIO_HIGH", 1, 0, 1); got != 1 {
		t.Fatalf("expected fallback for out of range value, got %v", got)
	}
	if got := Float("COSTCALC_RATIO_BAD", 0.5, 0, 1); got != 0.5 {
		t.Fatalf("expected fallback for invalid value, got %v", got)
	}
}
