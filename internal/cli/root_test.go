package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd("test")

	for _, name := range []string{"serve", "seed"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, cmd, err)
		}
	}
	if root.PersistentFlags().Lookup("env-file") == nil {
		t.Fatal("expected --env-file flag")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file must be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CATALOG_TEST_VAR=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_TEST_VAR", "")
	os.Unsetenv("CATALOG_TEST_VAR")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("CATALOG_TEST_VAR"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
