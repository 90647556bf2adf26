package chatllm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Category is one of the error taxonomy members an agent failure is
// classified into.
type Category int

const (
	CategoryTransientNetwork Category = iota
	CategoryRateLimited
	CategoryTimeout
	CategoryConfiguration
	CategoryCancelled
	CategoryFatal
)

func (c Category) String() string {
	switch c {
	case CategoryTransientNetwork:
		return "transient-network"
	case CategoryRateLimited:
		return "rate-limited"
	case CategoryTimeout:
		return "timeout"
	case CategoryConfiguration:
		return "configuration"
	case CategoryCancelled:
		return "cancelled"
	case CategoryFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Retryable reports whether the category is retried by Invoke.
func (c Category) Retryable() bool {
	switch c {
	case CategoryTimeout, CategoryRateLimited, CategoryTransientNetwork:
		return true
	default:
		return false
	}
}

// AgentError is the base error type wrapping an agent failure with its
// classified category. It mirrors the SDKError{Message, Cause} shape,
// generalized with the Category the teacher's typed-error hierarchy
// expressed as a concrete struct per error kind.
type AgentError struct {
	Category Category
	Message  string
	Cause    error
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Category, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Category)
}

func (e *AgentError) Unwrap() error { return e.Cause }

// RemediationHint returns an actionable hint shown alongside a
// configuration-category error, per §7.
func (e *AgentError) RemediationHint() string {
	if e.Category != CategoryConfiguration {
		return ""
	}
	return "check the agent's model identifier and arguments"
}

var networkSubstrings = []string{
	"connection reset",
	"connection refused",
	"no such host",
	"dns",
	"unreachable",
	"broken pipe",
}

var configurationSubstrings = []string{
	"isn't supported",
	"is not supported",
	"unsupported model",
	"invalid argument",
	"invalid request",
	"validation",
}

// ClassifyError implements the substring/type rules of §4.5, in this
// order: context cancellation first, then timeout phrases, then
// rate-limit phrases, then network-family phrases, then
// configuration/validation phrases, with anything left over classified
// fatal.
func ClassifyError(err error) Category {
	if err == nil {
		return CategoryFatal
	}
	if errors.Is(err, context.Canceled) {
		return CategoryCancelled
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "ended prematurely") {
		return CategoryTimeout
	}
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "throttl") || strings.Contains(msg, "429") {
		return CategoryRateLimited
	}
	for _, s := range networkSubstrings {
		if strings.Contains(msg, s) {
			return CategoryTransientNetwork
		}
	}
	for _, s := range configurationSubstrings {
		if strings.Contains(msg, s) {
			return CategoryConfiguration
		}
	}
	return CategoryFatal
}

// Classify wraps err as an *AgentError carrying its classified
// Category, unless it is already one.
func Classify(err error) *AgentError {
	if err == nil {
		return nil
	}
	var ae *AgentError
	if errors.As(err, &ae) {
		return ae
	}
	return &AgentError{Category: ClassifyError(err), Message: err.Error(), Cause: err}
}
