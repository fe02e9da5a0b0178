// Package orchestrator wires the form registry, model builder, widget
// decorators, required-field validation and renderers into a single
// Generate call used by the web server and the CLI.
package orchestrator
