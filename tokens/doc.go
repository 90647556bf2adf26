// Package tokens extracts usage counters from an opaque agent Response,
// prices them against a model catalog, and formats counts and cost for
// display.
package tokens
