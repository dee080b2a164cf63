package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const graphYAML = `match_type: domination
segments:
  - name: road
    points: [[0, 0, 0], [30, 40, 0], [60, 80, 0]]
  - name: drop
    reversible: false
    points: [[60, 80, 10], [60, 0, 0]]
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func graphDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "domination.yaml"), []byte(graphYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestList(t *testing.T) {
	out, err := run(t, "list", "--dir", graphDir(t))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"road", "100.0", "drop", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestShow(t *testing.T) {
	dir := graphDir(t)
	out, err := run(t, "show", "domination", "1", "--dir", dir)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"drop" reversible=false`) {
		t.Errorf("show output:\n%s", out)
	}

	if _, err := run(t, "show", "domination", "5", "--dir", dir); err == nil {
		t.Error("out-of-range index accepted")
	}
	if _, err := run(t, "show", "flag", "0", "--dir", dir); err == nil {
		t.Error("match type without a graph accepted")
	}
}

func TestValidateWarnsOnUnreachablePoint(t *testing.T) {
	dir := graphDir(t)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	body := `match_types:
  domination:
    points:
      - {id: 1, name: near, pos: {x: 10, y: 10}}
      - {id: 2, name: far, pos: {x: 900, y: 900}}
`
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "validate", "--dir", dir, "--config", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "point 2 (far)") || strings.Contains(out, "point 1 (near)") {
		t.Errorf("validate output:\n%s", out)
	}
	if !strings.Contains(out, "1 warnings") {
		t.Errorf("validate output:\n%s", out)
	}
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, _ := doc["properties"].(map[string]any)
	if _, ok := props["segments"]; !ok {
		t.Errorf("schema has no segments property: %v", doc)
	}
}
