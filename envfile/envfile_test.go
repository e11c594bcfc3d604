// Copyright (c) 2025 BVK Chaitanya

package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdateEnv(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	data := "# pumpbot defaults\nREST_URL = http://127.0.0.1:8080/api/v1.1/\n\nPOLL_INTERVAL=200ms\n"
	if err := os.WriteFile(filepath.Join(second, ".test.env"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ENVTEST_POLL_INTERVAL", "1s")
	t.Setenv("ENVTEST_REST_URL", "")

	fpath, err := UpdateEnv(".test.env", SearchDirs(first, second), VariableNamePrefix("ENVTEST_"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(second, ".test.env"); fpath != want {
		t.Fatalf("want %q, got %q", want, fpath)
	}
	if v := os.Getenv("ENVTEST_REST_URL"); v != "http://127.0.0.1:8080/api/v1.1/" {
		t.Fatalf("unexpected rest url value %q", v)
	}
	// Existing value must not be overwritten.
	if v := os.Getenv("ENVTEST_POLL_INTERVAL"); v != "1s" {
		t.Fatalf("want 1s, got %q", v)
	}

	if _, err := UpdateEnv(".test.env", SearchDirs(second), VariableNamePrefix("ENVTEST_"), OverwriteIfExists(true)); err != nil {
		t.Fatal(err)
	}
	if v := os.Getenv("ENVTEST_POLL_INTERVAL"); v != "200ms" {
		t.Fatalf("want 200ms, got %q", v)
	}
}

func TestUpdateEnvMissingFile(t *testing.T) {
	fpath, err := UpdateEnv(".missing.env", SearchDirs(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if fpath != "" {
		t.Fatalf("want empty path, got %q", fpath)
	}
}

func TestUpdateEnvErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".bad.env"), []byte("NOEQUALS\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := UpdateEnv(".bad.env", SearchDirs(dir)); err == nil {
		t.Fatalf("want error for invalid line")
	}
	if _, err := UpdateEnv("a/b.env"); err == nil {
		t.Fatalf("want error for path separator")
	}
	if _, err := UpdateEnv(".bad.env", VariableNamePrefix("1BAD")); err == nil {
		t.Fatalf("want error for invalid prefix")
	}
}

func TestUpdateEnvCurrentDir(t *testing.T) {
	cwd, home := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, ".test.env"), []byte("NAME=local\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".test.env"), []byte("NAME=home\n"), 0600); err != nil {
		t.Fatal(err)
	}

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	t.Setenv("CWDTEST_NAME", "")

	fpath, err := UpdateEnv(".test.env", SearchCurrentDir(), SearchDirs(home), VariableNamePrefix("CWDTEST_"))
	if err != nil {
		t.Fatal(err)
	}
	if v := os.Getenv("CWDTEST_NAME"); v != "local" {
		t.Fatalf("want value from the current directory, got %q from %s", v, fpath)
	}

	if err := os.Remove(filepath.Join(cwd, ".test.env")); err != nil {
		t.Fatal(err)
	}
	if _, err := UpdateEnv(".test.env", SearchCurrentDir(), SearchDirs(home), VariableNamePrefix("CWDTEST_"), OverwriteIfExists(true)); err != nil {
		t.Fatal(err)
	}
	if v := os.Getenv("CWDTEST_NAME"); v != "home" {
		t.Fatalf("want value from the second directory, got %q", v)
	}
}
