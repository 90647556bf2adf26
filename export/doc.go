// Package export writes the session transcript to a markdown file on
// clean exit when auto-save is enabled.
package export
