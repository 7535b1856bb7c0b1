package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/agentstation/pkgsync/internal/config"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/packages"
	"github.com/agentstation/pkgsync/pkg/sources"
)

func identityViper() *viper.Viper {
	v := viper.New()
	for _, t := range packages.DependencyTypes() {
		v.Set(config.DependencyTypesKey+"."+t.String(), uuid.NewString())
	}
	for _, t := range packages.URLTypes() {
		v.Set(config.URLTypesKey+"."+t.String(), uuid.NewString())
	}
	v.Set(config.PackageManagersKey+"."+sources.HomebrewID.String(), uuid.NewString())
	return v
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithViper(viper.New()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

// TestApp_Identities_Singleton verifies concurrent Identities() calls load once.
func TestApp_Identities_Singleton(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithViper(identityViper()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]*config.Identities, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Identities()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Goroutine %d: Identities() failed: %v", i, err)
		}
	}
	for i, ids := range results[1:] {
		if ids != results[0] {
			t.Errorf("Goroutine %d got different identities", i+1)
		}
	}
	if _, err := results[0].For(sources.HomebrewID); err != nil {
		t.Errorf("For(homebrew) failed: %v", err)
	}
}

// TestApp_Identities_Invalid verifies incomplete tables are rejected.
func TestApp_Identities_Invalid(t *testing.T) {
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithViper(viper.New()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := app.Identities(); !errors.IsUnknownType(err) {
		t.Errorf("Identities() error = %v, want unknown type", err)
	}
}

// TestApp_Execute runs commands through the root command.
func TestApp_Execute(t *testing.T) {
	app, err := New("1.2.3", "test", "2024-01-01", "test", WithViper(identityViper()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "pkgsync 1.2.3") {
		t.Errorf("version output = %q", out.String())
	}

	root = app.createRootCommand()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"sources", "-o", "yaml"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sources failed: %v", err)
	}
	if !strings.Contains(out.String(), "id: homebrew") {
		t.Errorf("sources output = %q", out.String())
	}

	root = app.createRootCommand()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"validate", "-o", "json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "not configured") {
		t.Errorf("validate output = %q", out.String())
	}

	if err := app.Execute(context.Background(), []string{"sync"}); err == nil {
		t.Error("sync without a source should fail")
	}
}
