package io

import (
	"encoding/json"
	"testing"

	serrors "github.com/sestools/sescribe/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat(FormatJSON); err != nil {
		t.Errorf("json should be valid: %v", err)
	}
	if err := ValidateFormat(FormatTOML); err != nil {
		t.Errorf("toml should be valid: %v", err)
	}

	err := ValidateFormat("yaml")
	if err == nil {
		t.Fatal("yaml should be rejected")
	}
	if !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
		t.Errorf("wrong error code: %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"graph.toml", FormatTOML},
		{"GRAPH.TOML", FormatTOML},
		{"graph.json", FormatJSON},
		{"graph.txt", FormatJSON},
		{"noext", FormatJSON},
		{"dir.toml/file", FormatJSON},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDecodeTreeJSON(t *testing.T) {
	tree, err := DecodeTree([]byte(`{"nodes": [{"id": 7}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeTree error: %v", err)
	}

	obj, ok := tree.(map[string]any)
	if !ok {
		t.Fatalf("tree is %T, want map", tree)
	}
	nodes, ok := obj["nodes"].([]any)
	if !ok || len(nodes) != 1 {
		t.Fatalf("nodes not decoded: %v", obj["nodes"])
	}

	// Numbers decode as json.Number so their source spelling survives.
	id := nodes[0].(map[string]any)["id"]
	if n, ok := id.(json.Number); !ok || n.String() != "7" {
		t.Errorf("id = %T %v, want json.Number 7", id, id)
	}
}

func TestDecodeTreeEmptyFormatDefaultsToJSON(t *testing.T) {
	tree, err := DecodeTree([]byte(`[1, 2]`), "")
	if err != nil {
		t.Fatalf("DecodeTree error: %v", err)
	}
	if _, ok := tree.([]any); !ok {
		t.Errorf("tree is %T, want []any", tree)
	}
}

func TestDecodeTreeTOML(t *testing.T) {
	doc := `
[[nodes]]
id = "a"
count = 3
`
	tree, err := DecodeTree([]byte(doc), FormatTOML)
	if err != nil {
		t.Fatalf("DecodeTree error: %v", err)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		t.Fatalf("tree is %T, want map", tree)
	}
	if _, present := obj["nodes"]; !present {
		t.Error("nodes table array missing")
	}
}

func TestDecodeTreeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"truncated json", `{"nodes": [`, FormatJSON},
		{"bare garbage json", `not json`, FormatJSON},
		{"bad toml", `nodes = [`, FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTree([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !serrors.Is(err, serrors.ErrCodeParse) {
				t.Errorf("wrong error code: %v", err)
			}
		})
	}
}

func TestDecodeTreeUnknownFormat(t *testing.T) {
	_, err := DecodeTree([]byte(`{}`), "xml")
	if !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
		t.Errorf("wrong error: %v", err)
	}
}
