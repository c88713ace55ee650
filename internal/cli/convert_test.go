package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	serrors "github.com/sestools/sescribe/pkg/errors"
)

func TestRequirePositional(t *testing.T) {
	validate := requirePositional(2, "need two args")

	if err := validate(nil, []string{"in", "out"}); err != nil {
		t.Errorf("exact count should pass: %v", err)
	}

	for _, args := range [][]string{{}, {"in"}, {"in", "out", "extra"}} {
		err := validate(nil, args)
		if err == nil {
			t.Errorf("args %v should fail", args)
			continue
		}
		if !serrors.Is(err, serrors.ErrCodeUsage) {
			t.Errorf("args %v: wrong error code: %v", args, err)
		}
	}
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.json")
	outPath := filepath.Join(dir, "out", "result.ses")

	input := `{
		"nodes": [
			{"id": "1", "name": "Alpha"},
			{"id": "2", "name": "Beta", "parent": "1"},
			{"id": "3", "name": "Gamma", "parent": "1"}
		],
		"edges": [{"source": "2", "target": "3"}]
	}`
	if err := os.WriteFile(inPath, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	err := runConvert(context.Background(), inPath, outPath, &convertOpts{})
	if err != nil {
		t.Fatalf("runConvert error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "From the AlphaSys perspective, Alpha is made of Beta and Gamma!") {
		t.Errorf("composition sentence missing:\n%s", text)
	}
	if !strings.Contains(text, "From the AlphaSys perspective, Beta sends outPort1 to Gamma as inPort1!") {
		t.Errorf("flow sentence missing:\n%s", text)
	}
}

func TestRunConvertOverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.json")
	outPath := filepath.Join(dir, "out.ses")

	if err := os.WriteFile(inPath, []byte(`{"nodes": [{"id": "1", "name": "Solo"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(outPath, []byte("stale previous output"), 0644); err != nil {
		t.Fatal(err)
	}

	// The overwrite flag is inert either way.
	if err := runConvert(context.Background(), inPath, outPath, &convertOpts{overwrite: false}); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	if strings.Contains(string(data), "stale") {
		t.Errorf("output not truncated:\n%s", data)
	}
}

func TestRunConvertMissingInput(t *testing.T) {
	err := runConvert(context.Background(), filepath.Join(t.TempDir(), "absent.json"),
		filepath.Join(t.TempDir(), "out.ses"), &convertOpts{})
	if !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestRunConvertTOMLByExtension(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.toml")
	outPath := filepath.Join(dir, "out.ses")

	doc := "[[nodes]]\nid = \"a\"\nname = \"Alpha\"\n"
	if err := os.WriteFile(inPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runConvert(context.Background(), inPath, outPath, &convertOpts{}); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	if !strings.Contains(string(data), "ROOT is made of Alpha!") {
		t.Errorf("TOML input not converted:\n%s", data)
	}
}
