// Package chatsession tracks per-session counters and transcript
// entries for the chat loop: start time, successful query count,
// cumulative token usage, and the conversation transcript consumed by
// the summary and the optional markdown exporter.
package chatsession
