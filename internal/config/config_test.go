package config

import (
	"os"
	"testing"
)

func TestGetenv(t *testing.T) {
	os.Unsetenv("TEST_GETENV")
	if got := getenv("TEST_GETENV", "default"); got != "default" {
		t.Errorf("Expected default value 'default', got '%s'", got)
	}

	os.Setenv("TEST_GETENV", "test-value")
	if got := getenv("TEST_GETENV", "default"); got != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", got)
	}

	os.Unsetenv("TEST_GETENV")
}

func TestGetenvInt(t *testing.T) {
	os.Unsetenv("TEST_GETENV_INT")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("Expected default value 42, got %d", got)
	}

	os.Setenv("TEST_GETENV_INT", "100")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}

	os.Setenv("TEST_GETENV_INT", "not-an-int")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("Expected default value 42, got %d", got)
	}

	os.Unsetenv("TEST_GETENV_INT")
}

func TestGetenvStringMap(t *testing.T) {
	os.Unsetenv("TEST_GETENV_MAP")
	def := map[string]string{"a": "b"}
	got, err := getenvStringMap("TEST_GETENV_MAP", def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["a"] != "b" {
		t.Errorf("expected default map, got %v", got)
	}

	os.Setenv("TEST_GETENV_MAP", `{"研發部":"rd@example.com"}`)
	got, err = getenvStringMap("TEST_GETENV_MAP", def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["研發部"] != "rd@example.com" {
		t.Errorf("expected parsed map, got %v", got)
	}

	// Malformed JSON is a structural error, not a silent fallback.
	os.Setenv("TEST_GETENV_MAP", "{broken")
	if _, err := getenvStringMap("TEST_GETENV_MAP", def); err == nil {
		t.Error("expected error for malformed JSON")
	}

	os.Unsetenv("TEST_GETENV_MAP")
}

func TestGetenvStringList(t *testing.T) {
	os.Unsetenv("TEST_GETENV_LIST")
	got, err := getenvStringList("TEST_GETENV_LIST", []string{"新報", "荃富"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "新報" {
		t.Errorf("expected default list, got %v", got)
	}

	os.Setenv("TEST_GETENV_LIST", `["x"]`)
	got, err = getenvStringList("TEST_GETENV_LIST", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("expected [x], got %v", got)
	}

	os.Unsetenv("TEST_GETENV_LIST")
}

func TestLoad(t *testing.T) {
	envVars := []string{
		"ROSTER_PATH", "EMPLOYEE_SHEET_NAME", "ROSTER_COLUMN_NAMES",
		"DEPARTMENT_GROUP_MAPPING", "EXCLUDED_INSURANCE_UNITS",
		"APPROVAL_TTL_SECONDS", "SFTP_PORT",
	}
	origEnv := make(map[string]string)
	for _, env := range envVars {
		origEnv[env] = os.Getenv(env)
		os.Unsetenv(env)
	}
	defer func() {
		for env, val := range origEnv {
			if val != "" {
				os.Setenv(env, val)
			} else {
				os.Unsetenv(env)
			}
		}
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EmployeeSheetName != "員工總控制表" {
		t.Errorf("Expected default sheet name, got '%s'", cfg.EmployeeSheetName)
	}
	if cfg.RosterColumns["dob"] != "出生日期" {
		t.Errorf("Expected default dob column, got '%s'", cfg.RosterColumns["dob"])
	}
	if cfg.ApprovalTTLSecs != 3600 {
		t.Errorf("Expected default TTL 3600, got %d", cfg.ApprovalTTLSecs)
	}
	if len(cfg.ExcludedUnits) != 2 {
		t.Errorf("Expected 2 default excluded units, got %v", cfg.ExcludedUnits)
	}

	os.Setenv("ROSTER_COLUMN_NAMES", `{"dob":"生日"}`)
	os.Setenv("APPROVAL_TTL_SECONDS", "60")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load with overrides: %v", err)
	}
	if cfg.RosterColumns["dob"] != "生日" {
		t.Errorf("Expected override dob column, got '%s'", cfg.RosterColumns["dob"])
	}
	if cfg.ApprovalTTLSecs != 60 {
		t.Errorf("Expected TTL 60, got %d", cfg.ApprovalTTLSecs)
	}

	os.Setenv("ROSTER_COLUMN_NAMES", "{broken")
	if _, err := Load(); err == nil {
		t.Error("expected Load to fail on malformed ROSTER_COLUMN_NAMES")
	}
}
