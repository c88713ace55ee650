// Package ses renders canonical graphs as SES sentence text.
//
// SES is a sentence-style description of a containment hierarchy and the
// flows inside it. Each parent scope produces one composition sentence
// naming its direct children, followed by one flow sentence per edge whose
// endpoints are siblings in that scope:
//
//	From the AlphaSys perspective, Alpha is made of Beta and Gamma!
//
//	From the AlphaSys perspective, Beta sends outPort1 to Gamma as inPort1!
//
// Output is deterministic: children sort by name, scopes sort root-first
// then by parent name, and flow port counters restart at 1 in every scope.
//
// The package also provides SanitizeToken, which maps free-text names onto
// tokens safe to embed in the generated sentences.
package ses
