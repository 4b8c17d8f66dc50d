package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kpumuk/lazychart/internal/dataset"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateSample(t *testing.T) {
	t.Parallel()

	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "ok: 7 bar categories, 7 line points, 6 pie slices") {
		t.Fatalf("validate output = %q", out)
	}
}

func TestValidateReportsErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "bar:\n  - label: a\n    values: [{name: x, value: -2}]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "validate", "--dataset", path)
	if err == nil {
		t.Fatalf("validate error = nil, want invalid dataset")
	}
	for _, want := range []string{"bar: invalid data[0].values[0].value", "line chart", "pie chart"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("validate error = %q, want it to mention %q", err, want)
		}
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.xlsx")
	if _, err := run(t, "export", path); err != nil {
		t.Fatalf("export error = %v", err)
	}
	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	if err := ds.Validate(); err != nil {
		t.Fatalf("exported dataset invalid: %v", err)
	}
}

func TestRangeAliases(t *testing.T) {
	t.Parallel()

	root := NewRootCommand("test")
	if err := root.ParseFlags([]string{"--window", "5m", "--interval", "10s"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if got, _ := root.Flags().GetDuration("range"); got != 5*time.Minute {
		t.Fatalf("range = %v, want 5m", got)
	}
	if got, _ := root.Flags().GetDuration("draw-interval"); got != 10*time.Second {
		t.Fatalf("draw-interval = %v, want 10s", got)
	}
}

func TestLoadDatasetInnerRadius(t *testing.T) {
	t.Parallel()

	root := NewRootCommand("test")
	if err := root.ParseFlags([]string{"--inner-radius", "0.5"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	ds, err := loadDataset(root)
	if err != nil {
		t.Fatalf("loadDataset() error = %v", err)
	}
	if ds.InnerRadius != 0.5 {
		t.Fatalf("InnerRadius = %v, want 0.5", ds.InnerRadius)
	}
}

func TestBuildVersion(t *testing.T) {
	t.Parallel()

	got := buildVersion("1.2.3", "abc", "", "")
	if !strings.HasPrefix(got, "1.2.3\ncommit: abc\ngoos: ") {
		t.Fatalf("buildVersion() = %q", got)
	}
}
