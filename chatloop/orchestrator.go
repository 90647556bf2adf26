package chatloop

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/strands-chat/chatloop/chatconfig"
	"github.com/strands-chat/chatloop/chatllm"
	"github.com/strands-chat/chatloop/chatsession"
	"github.com/strands-chat/chatloop/dispatch"
	"github.com/strands-chat/chatloop/export"
	"github.com/strands-chat/chatloop/prompttemplate"
	"github.com/strands-chat/chatloop/terminalio"
	"github.com/strands-chat/chatloop/tokens"
)

// AgentFactory produces a fresh Agent, invoked once at startup and
// again on every `clear` (§3: "the Agent is created by an external
// factory before the Orchestrator starts").
type AgentFactory func() (chatllm.Agent, error)

// Options configures one Orchestrator run.
type Options struct {
	ConfigPath string
	NewAgent   AgentFactory

	Stdin  *os.File
	Stdout io.Writer

	// Logf receives diagnostic log lines; nil disables logging.
	Logf func(format string, args ...interface{})
}

// lineReader is the subset of *terminalio.LineEditor the Orchestrator
// depends on, narrowed to an interface so tests can drive the turn
// loop without a real controlling terminal.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	ReadMultiline() (string, error)
	IsTTY() bool
}

// Orchestrator composes every other component into the main loop
// (§4.9).
type Orchestrator struct {
	opts      Options
	cfg       *chatconfig.EffectiveConfig
	agent     chatllm.Agent
	editor    lineReader
	colors    *terminalio.ColorWriter
	session   *chatsession.State
	templates *prompttemplate.Store

	agentName string
}

// Run executes the full startup -> turn-loop -> shutdown sequence and
// returns the process exit code (§6: 0 on clean exit, non-zero on an
// unhandled error, after the summary has already been emitted).
func Run(opts Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...interface{}) {}
	}

	o, err := newOrchestrator(opts)
	if err != nil {
		fmt.Fprintf(opts.Stdout, "startup error: %v\n", err)
		return 1
	}
	return o.run()
}

func newOrchestrator(opts Options) (*Orchestrator, error) {
	resolver := chatconfig.NewResolver()
	resolver.Warnf = opts.Logf
	cfg, err := resolver.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	agent, err := opts.NewAgent()
	if err != nil {
		return nil, err
	}
	agentName := chatllm.DisplayName(agent)

	historyPath := ""
	if cfg.GetBool("features.readline_enabled", true, agentName) {
		if home, err := os.UserHomeDir(); err == nil {
			historyPath = home + "/.chat_history"
		}
	}
	editor, err := terminalio.NewLineEditor(opts.Stdin, opts.Stdout, historyPath)
	if err != nil {
		return nil, err
	}

	colorNames := map[terminalio.Role]string{
		terminalio.RoleUser:    cfg.GetString("colors.user", "bright white", agentName),
		terminalio.RoleAgent:   cfg.GetString("colors.agent", "bright blue", agentName),
		terminalio.RoleSystem:  cfg.GetString("colors.system", "yellow", agentName),
		terminalio.RoleError:   cfg.GetString("colors.error", "bright red", agentName),
		terminalio.RoleSuccess: cfg.GetString("colors.success", "bright green", agentName),
		terminalio.RoleDim:     cfg.GetString("colors.dim", "dim", agentName),
	}
	colors := terminalio.NewColorWriter(opts.Stdout, colorNames)

	templates, err := prompttemplate.NewStore()
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		opts:      opts,
		cfg:       cfg,
		agent:     agent,
		editor:    editor,
		colors:    colors,
		session:   chatsession.New(),
		templates: templates,
		agentName: agentName,
	}, nil
}

func (o *Orchestrator) run() int {
	if o.cfg.GetBool("ui.show_banner", true, o.agentName) {
		o.printBanner()
	}

	exitCode := 0
	func() {
		defer o.emitSummary()
		exitCode = o.loop()
	}()
	o.shutdown()
	return exitCode
}

func (o *Orchestrator) loop() int {
	interruptStreak := 0
	for {
		if o.cfg.GetBool("ui.show_status_bar", false, o.agentName) {
			o.renderStatusBar()
		}

		input, err := o.editor.ReadLine("> ")
		if err == io.EOF {
			return 0
		}
		if err == terminalio.ErrInterrupted {
			// §3: a second consecutive top-level interrupt ends the
			// session; a single one just redraws the prompt.
			interruptStreak++
			if interruptStreak >= 2 {
				return 0
			}
			continue
		}
		if err != nil {
			o.colors.Println(terminalio.RoleError, fmt.Sprintf("system error: %v", err))
			interruptStreak = 0
			continue
		}
		interruptStreak = 0

		cls := dispatch.Classify(input)
		if cls.Kind == dispatch.KindMultilineStart {
			body, err := o.editor.ReadMultiline()
			if err == io.EOF {
				return 0
			}
			if err == terminalio.ErrInterrupted {
				continue
			}
			if err != nil {
				o.colors.Println(terminalio.RoleError, fmt.Sprintf("system error: %v", err))
				continue
			}
			cls = dispatch.Classify(body)
			if cls.Kind == dispatch.KindMultilineStart {
				// An empty multi-line body classifies as empty (§8);
				// prevent infinite re-entry into multi-line mode.
				cls = dispatch.Classify("")
			}
		}

		switch cls.Kind {
		case dispatch.KindEmpty:
			continue
		case dispatch.KindBuiltin:
			if done := o.handleBuiltin(cls.Builtin); done {
				return 0
			}
		case dispatch.KindTemplate:
			prompt, ok := o.materializeTemplate(cls.TemplateName, cls.TrailingContext)
			if !ok {
				continue
			}
			o.handlePrompt(prompt)
		case dispatch.KindPrompt:
			o.handlePrompt(cls.Text)
		}
	}
}

func (o *Orchestrator) materializeTemplate(name, context string) (string, bool) {
	tmpl, err := o.templates.Load(name)
	if err != nil {
		o.colors.Println(terminalio.RoleError, fmt.Sprintf("no template named %q", name))
		return "", false
	}
	return prompttemplate.Materialize(tmpl.Body, context), true
}

func (o *Orchestrator) handleBuiltin(b dispatch.Builtin) (exit bool) {
	switch b {
	case dispatch.BuiltinHelp:
		o.printHelp()
	case dispatch.BuiltinInfo:
		o.printInfo()
	case dispatch.BuiltinTemplates:
		o.printTemplates()
	case dispatch.BuiltinClear:
		o.handleClear()
	case dispatch.BuiltinExit:
		return true
	}
	return false
}

func (o *Orchestrator) handleClear() {
	fmt.Fprint(o.opts.Stdout, "\x1b[2J\x1b[H")
	chatllm.Cleanup(o.agent)

	agent, err := o.opts.NewAgent()
	if err != nil {
		o.colors.Println(terminalio.RoleError, fmt.Sprintf("failed to create fresh agent: %v", err))
		return
	}
	o.agent = agent
	o.agentName = chatllm.DisplayName(agent)
	o.session.Reset()

	if o.cfg.GetBool("ui.show_banner", true, o.agentName) {
		o.printBanner()
	}
}

func (o *Orchestrator) handlePrompt(prompt string) {
	policy := chatllm.RetryPolicy{
		MaxRetries: o.cfg.GetInt("behavior.max_retries", 3, o.agentName),
		BaseDelay:  o.cfg.GetFloat("behavior.retry_delay", 2.0, o.agentName),
		Timeout:    o.cfg.GetFloat("behavior.timeout", 120.0, o.agentName),
	}

	showIndicator := o.cfg.GetBool("ui.show_thinking_indicator", true, o.agentName)
	var spinner *terminalio.Spinner
	if showIndicator {
		style := o.cfg.GetString("behavior.spinner_style", "dots", o.agentName)
		spinner = terminalio.NewSpinner(o.opts.Stdout, style, !o.editor.IsTTY())
		policy.OnAttemptStart = func(int) { spinner.Start() }
		policy.OnAttemptEnd = func(int) { spinner.Stop() }
	}
	policy.OnRetry = func(err *chatllm.AgentError, attempt int, delay time.Duration) {
		if attempt > 1 {
			o.colors.Println(terminalio.RoleSystem,
				fmt.Sprintf("retrying (attempt %d), waiting %s...", attempt, delay))
		}
	}

	start := time.Now()
	resp, agentErr := chatllm.Invoke(context.Background(), o.agent, prompt, policy)
	duration := time.Since(start)

	if agentErr != nil {
		o.renderError(agentErr)
		return
	}

	modelID := resp.Model
	if modelID == "" {
		modelID = chatllm.ModelID(o.agent)
	}
	usage := tokens.Extract(resp.Raw, modelID)
	o.session.RecordTurn(prompt, resp.Text, usage, resp.Raw)

	o.colors.Println(terminalio.RoleAgent, resp.Text)
	o.renderPerTurnLine(duration, usage)
}

func (o *Orchestrator) renderError(err *chatllm.AgentError) {
	switch err.Category {
	case chatllm.CategoryCancelled:
		return
	case chatllm.CategoryConfiguration:
		o.colors.Println(terminalio.RoleError, fmt.Sprintf("%s (%s)", err.Message, err.RemediationHint()))
	default:
		o.colors.Println(terminalio.RoleError, fmt.Sprintf("%s [%s]", err.Error(), err.Category))
	}
}

func (o *Orchestrator) renderPerTurnLine(d time.Duration, usage tokens.Usage) {
	if !o.cfg.GetBool("features.show_tokens", false, o.agentName) {
		return
	}
	var parts []string
	if o.cfg.GetBool("ui.show_duration", true, o.agentName) {
		parts = append(parts, fmt.Sprintf("%.1fs", d.Seconds()))
	}
	if usage.CycleKnown {
		word := "cycle"
		if usage.CycleCount != 1 {
			word = "cycles"
		}
		parts = append(parts, fmt.Sprintf("%d %s", usage.CycleCount, word))
	}
	parts = append(parts, fmt.Sprintf("Tokens: %s (in: %s, out: %s)",
		tokens.FormatTokens(usage.TotalTokens), tokens.FormatTokens(usage.InputTokens), tokens.FormatTokens(usage.OutputTokens)))
	if cost := tokens.FormatCost(usage); cost != "" {
		parts = append(parts, cost)
		parts = append(parts, fmt.Sprintf("session: %s", tokens.FormatCost(o.session.Snapshot().Cumulative)))
	}
	o.colors.Println(terminalio.RoleDim, strings.Join(parts, " | "))
}

func (o *Orchestrator) renderStatusBar() {
	snap := o.session.Snapshot()
	terminalio.RenderStatusBar(o.opts.Stdout, terminalio.StatusBarInfo{
		AgentName:   o.agentName,
		ModelID:     chatllm.ModelID(o.agent),
		QueryCount:  snap.QueryCount,
		ShowTokens:  o.cfg.GetBool("features.show_tokens", false, o.agentName),
		TotalTokens: snap.Cumulative.TotalTokens,
		Elapsed:     chatsession.FormatDuration(snap.Elapsed),
	})
}

func (o *Orchestrator) printBanner() {
	o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("chatloop — talking to %s", o.agentName))
	if desc := chatllm.Description(o.agent); desc != "" && o.cfg.GetBool("features.show_metadata", true, o.agentName) {
		o.colors.Println(terminalio.RoleDim, desc)
	}
}

func (o *Orchestrator) printHelp() {
	lines := []string{
		"help       show this message",
		"info       show agent metadata",
		"templates  list available prompt templates",
		"clear      reset the session and start a fresh agent",
		"exit/quit  end the session",
		`\\         begin a multi-line input, end with an empty line`,
		"/<name>    invoke a prompt template",
	}
	for _, l := range lines {
		o.colors.Println(terminalio.RoleSystem, l)
	}
}

func (o *Orchestrator) printInfo() {
	o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("Agent: %s", o.agentName))
	if model := chatllm.ModelID(o.agent); model != "" {
		o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("Model: %s", model))
	}
	if tools := chatllm.ToolList(o.agent); len(tools) > 0 {
		o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("Tools: %s", strings.Join(tools, ", ")))
	}
	if enabled := o.enabledFeatures(); len(enabled) > 0 {
		o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("Features: %s", strings.Join(enabled, ", ")))
	}
}

// enabledFeatures returns the names of every recognized features.* key
// that resolves to true for this agent in the effective config (§4.3:
// `info` reports "the effective config's enabled features for this
// agent").
func (o *Orchestrator) enabledFeatures() []string {
	names := []string{"auto_save", "rich_enabled", "show_tokens", "show_metadata", "readline_enabled"}
	var enabled []string
	for _, n := range names {
		if o.cfg.GetBool("features."+n, false, o.agentName) {
			enabled = append(enabled, n)
		}
	}
	return enabled
}

func (o *Orchestrator) printTemplates() {
	list, err := o.templates.List()
	if err != nil {
		o.colors.Println(terminalio.RoleError, fmt.Sprintf("failed to list templates: %v", err))
		return
	}
	if len(list) == 0 {
		o.colors.Println(terminalio.RoleDim, "no templates found")
		return
	}
	for _, t := range list {
		o.colors.Println(terminalio.RoleSystem, fmt.Sprintf("/%s  %s", t.Name, prompttemplate.Description(t.Body, 60)))
	}
}

func (o *Orchestrator) emitSummary() {
	o.colors.Println(terminalio.RoleSystem, chatsession.Summary(o.session.Snapshot()))
}

func (o *Orchestrator) shutdown() {
	snap := o.session.Snapshot()
	if o.cfg.GetBool("features.auto_save", false, o.agentName) && len(snap.Transcript) > 0 {
		saveDir := o.cfg.GetString("paths.save_location", "~/agent-conversations", o.agentName)
		path, err := export.Export(saveDir, o.agentName, chatllm.ModelID(o.agent), o.session.Start, time.Now(), snap)
		if err != nil {
			o.colors.Println(terminalio.RoleError, fmt.Sprintf("failed to export conversation: %v", err))
		} else {
			o.colors.Println(terminalio.RoleSuccess, fmt.Sprintf("conversation saved to %s", path))
		}
	}
	chatllm.Cleanup(o.agent)
}
