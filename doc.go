// Package triage contains the core components of Triage, a small library for tolerating malformed
// input while parsing partitioned delimited data. Each raw partition is parsed on its own and
// classified as either a parsed Table or a failure which keeps the original bytes for inspection.
// This root package defines the types shared by the parsers, data sources, classifier and quarantine
// store, and is a good overview of the library's key concepts.
package triage
