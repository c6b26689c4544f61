package tests

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildCalorieBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "calorie")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build calorie binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runCalorie(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run calorie command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func initDB(t *testing.T, binPath, dbPath string) {
	t.Helper()
	_, stderr, exit := runCalorie(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init db failed: exit=%d stderr=%s", exit, stderr)
	}
}

func addOats(t *testing.T, binPath, dbPath string) {
	t.Helper()
	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"food", "add",
		"--name", "oats",
		"--serving-size", "100",
		"--serving-unit", "g",
		"--calories", "200",
		"--protein", "10",
		"--carbs", "60",
	)
	if exit != 0 {
		t.Fatalf("food add failed: exit=%d stderr=%s", exit, stderr)
	}
}

func TestCLIRejectsZeroServingSize(t *testing.T) {
	binPath := buildCalorieBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"food", "add",
		"--name", "x",
		"--serving-size", "0",
		"--serving-unit", "g",
		"--calories", "100",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for zero serving size")
	}
	if !strings.Contains(stderr, "serving size must be > 0") {
		t.Fatalf("expected validation error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsUnknownMeal(t *testing.T) {
	binPath := buildCalorieBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	initDB(t, binPath, dbPath)
	addOats(t, binPath, dbPath)

	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"log", "add", "oats",
		"--unit", "g",
		"--quantity", "100",
		"--meal", "brunch",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for unknown meal")
	}
	if !strings.Contains(stderr, "unknown meal") {
		t.Fatalf("expected meal validation error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsServingCombinedWithUnit(t *testing.T) {
	binPath := buildCalorieBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	initDB(t, binPath, dbPath)
	addOats(t, binPath, dbPath)

	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"log", "add", "oats",
		"--serving", "1 bowl",
		"--unit", "g",
		"--quantity", "100",
		"--meal", "breakfast",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit when combining --serving with --unit")
	}
	if !strings.Contains(stderr, "--serving cannot be combined with --unit") {
		t.Fatalf("expected conflict error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsWeightUnitForWater(t *testing.T) {
	binPath := buildCalorieBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"water", "add",
		"--amount", "100",
		"--unit", "g",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for weight unit on water")
	}
	if !strings.Contains(stderr, "unknown unit") {
		t.Fatalf("expected conversion error in stderr, got: %s", stderr)
	}
}

func TestCLIRejectsTimeWithoutDate(t *testing.T) {
	binPath := buildCalorieBinary(t)
	dbPath := filepath.Join(t.TempDir(), "calorie.db")
	initDB(t, binPath, dbPath)
	addOats(t, binPath, dbPath)

	_, stderr, exit := runCalorie(t, binPath, dbPath,
		"log", "add", "oats",
		"--unit", "g",
		"--quantity", "100",
		"--meal", "breakfast",
		"--time", "08:00",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for --time without --date")
	}
	if !strings.Contains(stderr, "--date is required when --time is set") {
		t.Fatalf("expected date validation error in stderr, got: %s", stderr)
	}
}
