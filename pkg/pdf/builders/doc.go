// Package builders contains the dedicated document builders for the bundled
// forms. Each one reproduces a fixed paper form; texts that are part of the
// printed document stay German regardless of the UI language.
package builders
