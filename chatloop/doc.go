// Package chatloop composes the Config Resolver, Terminal I/O, Input
// Dispatcher, Template Store, Agent Invoker, Token Accountant, Session
// State, and Conversation Exporter into the interactive REPL described
// in the specification: a single-goroutine loop alternating between a
// blocking terminal read and a blocking (possibly retried) agent call.
//
// # Architecture
//
//   - Orchestrator: owns the turn loop. Every dependency it touches
//     (chatconfig.EffectiveConfig, a lineReader, terminalio.ColorWriter,
//     chatsession.State, prompttemplate.Store, the Agent itself) is
//     constructed once at startup; `clear` replaces the Agent and
//     resets the session state, keeping the rest.
//   - AgentFactory: supplied by the caller, invoked at startup and again
//     on every `clear`; this package never constructs an Agent itself.
//   - lineReader: narrows *terminalio.LineEditor down to the three
//     methods the loop actually calls, so tests can drive turns with a
//     scripted reader instead of a real controlling terminal.
//
// # Quick Start
//
//	code := chatloop.Run(chatloop.Options{
//	    NewAgent: func() (chatllm.Agent, error) { return myagent.New() },
//	})
//	os.Exit(code)
package chatloop
