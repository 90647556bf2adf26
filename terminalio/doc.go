// Package terminalio owns the controlling terminal: a raw-mode line
// editor with history and reverse search, colored output, a thinking
// spinner, and a status bar. The line editor always reads on the main
// goroutine — never offloaded to a worker, so it never loses ownership
// of terminal state mid-read.
package terminalio
