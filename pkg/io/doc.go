// Package io handles the file edges of the conversion pipeline: reading
// input documents, decoding them into generic trees, and persisting the
// emitted SES text.
//
// Decoding is schema-free by design. Both supported formats (JSON, TOML)
// decode into the same generic shape - objects as map[string]any, arrays
// as []any, scalars as leaves - which is what the extraction heuristics
// operate on. JSON numbers are preserved as json.Number so numeric ids
// keep their source spelling.
package io
