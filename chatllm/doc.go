// Package chatllm invokes the external agent, classifying failures into
// a small error taxonomy and applying retry-with-backoff to the
// retryable categories. It generalizes the retry/error-classification
// core of an unwrapped LLM SDK client down to a single opaque agent
// call, since this chat loop never talks to a provider directly.
//
// # Architecture
//
//   - Agent: the sole required capability (Invoke); DisplayNamer,
//     ModelIdentifier, Describer, ToolLister and Cleanuper are probed
//     for optionally, never assumed.
//   - ClassifyError: sorts an error into a Category (transient network,
//     rate limited, timeout, configuration, cancelled, fatal) by
//     substring/type matching on its text, since the Agent exposes no
//     status code to branch on.
//   - Invoke: drives one or more attempts under a RetryPolicy, firing
//     OnAttemptStart/OnAttemptEnd around each attempt so a caller can
//     drive a thinking indicator, and OnRetry between attempts.
//
// # Quick Start
//
//	policy := chatllm.RetryPolicy{MaxRetries: 3, BaseDelay: 2.0, Timeout: 120.0}
//	resp, agentErr := chatllm.Invoke(ctx, agent, prompt, policy)
//	if agentErr != nil {
//	    fmt.Println(agentErr.Error(), agentErr.RemediationHint())
//	    return
//	}
//	fmt.Println(resp.Text)
package chatllm
