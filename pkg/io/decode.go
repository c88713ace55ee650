package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	serrors "github.com/sestools/sescribe/pkg/errors"
)

// Input formats accepted by DecodeTree.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ValidFormats is the set of supported input formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatTOML: true,
}

// ValidateFormat checks that an input format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return serrors.New(serrors.ErrCodeInvalidFormat,
			"invalid input format: %q (must be one of: json, toml)", format)
	}
	return nil
}

// DetectFormat guesses the input format from a file extension.
// Unknown extensions default to JSON.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// DecodeTree parses a single document into a generic tree. An empty
// format defaults to JSON. Malformed documents are a hard failure with
// code PARSE_ERROR; there is no partial decoding.
func DecodeTree(data []byte, format string) (any, error) {
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var tree any
		if err := dec.Decode(&tree); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeParse, err, "parse JSON")
		}
		return tree, nil
	case FormatTOML:
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeParse, err, "parse TOML")
		}
		return tree, nil
	default:
		return nil, ValidateFormat(format)
	}
}
