// Package dispatch classifies completed user input into the handling
// category the orchestrator dispatches on.
package dispatch
