package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	navkiterrors "github.com/navkit-dev/navkit/internal/errors"
)

const adminManifest = `{
  "module": "admin",
  "routes": [
    {"path": "", "redirectTo": "users"},
    {"path": "users", "component": "AdminUsers"},
    {"path": "reports", "module": "admin-reports"}
  ]
}`

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "admin.json"), []byte(adminManifest), 0644); err != nil {
		t.Fatal(err)
	}

	l := New(NewDiskSource(dir))
	table, err := l.Load(context.Background(), "admin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(table) != 3 {
		t.Fatalf("len(table) = %d, want 3", len(table))
	}
	if table[0].RedirectTo != "users" {
		t.Errorf("table[0].RedirectTo = %q, want %q", table[0].RedirectTo, "users")
	}
	if table[1].Component != "AdminUsers" {
		t.Errorf("table[1].Component = %q, want %q", table[1].Component, "AdminUsers")
	}
	if table[2].LoadChildren == nil {
		t.Error("table[2] should carry a nested lazy module")
	}
}

func TestLoadCaching(t *testing.T) {
	var fetches atomic.Int32
	source := SourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		fetches.Add(1)
		return []byte(adminManifest), nil
	})

	l := New(source)
	if _, err := l.Load(context.Background(), "admin"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := l.Load(context.Background(), "admin"); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("source fetched %d times, want 1", got)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	l := New(NewDiskSource(t.TempDir()))

	_, err := l.Load(context.Background(), "ghost")
	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N062" {
		t.Errorf("error = %v, want code N062", err)
	}
}

func TestLoadInvalidManifest(t *testing.T) {
	source := SourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		return []byte("{not json"), nil
	})

	_, err := New(source).Load(context.Background(), "broken")
	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N061" {
		t.Errorf("error = %v, want code N061", err)
	}
}

func TestComponentValidation(t *testing.T) {
	source := SourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		return []byte(adminManifest), nil
	})

	l := New(source, WithComponents("AdminUsers"))
	if _, err := l.Load(context.Background(), "admin"); err != nil {
		t.Fatalf("Load with known components: %v", err)
	}

	l = New(source, WithComponents("SomethingElse"))
	_, err := l.Load(context.Background(), "admin")
	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N061" {
		t.Errorf("error = %v, want code N061 for unknown component", err)
	}
}

func TestNestedChildren(t *testing.T) {
	manifest := `{
	  "routes": [
	    {"path": "shop", "component": "Shop", "children": [
	      {"path": "cart", "component": "Cart"}
	    ]}
	  ]
	}`
	source := SourceFunc(func(ctx context.Context, name string) ([]byte, error) {
		return []byte(manifest), nil
	})

	table, err := New(source).Load(context.Background(), "shop")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table) != 1 || len(table[0].Children) != 1 {
		t.Fatalf("unexpected table shape: %+v", table)
	}
	if got := table[0].Children[0].Component; got != "Cart" {
		t.Errorf("nested component = %q, want %q", got, "Cart")
	}
}
