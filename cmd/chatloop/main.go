// Command chatloop runs the interactive terminal chat loop: it wires
// CLI flags, the config resolver, diagnostic logging, and an agent
// factory into chatloop.Run.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/strands-chat/chatloop/chatconfig"
	"github.com/strands-chat/chatloop/chatllm"
	"github.com/strands-chat/chatloop/chatloop"
)

func main() {
	agentPath := flag.String("agent", "", "path to an agent definition (required)")
	configPath := flag.String("config", "", "path to a config file, overriding discovery")
	flag.Parse()

	if *agentPath == "" {
		fmt.Fprintln(os.Stderr, "chatloop: --agent is required")
		os.Exit(1)
	}

	logger, logf, sync := newDiagnosticLogger(*configPath)
	defer sync()
	logger.Debug("starting", zap.String("agent", *agentPath), zap.String("config", *configPath))

	code := chatloop.Run(chatloop.Options{
		ConfigPath: *configPath,
		NewAgent: func() (chatllm.Agent, error) {
			return loadDefinitionAgent(*agentPath)
		},
		Logf: logf,
	})
	os.Exit(code)
}

// newDiagnosticLogger builds a zap logger writing to the config's
// paths.log_location (resolved once, ahead of the Orchestrator's own
// config load, since the logger must exist before the loop starts) and
// returns a Logf adapter plus its Sync func.
func newDiagnosticLogger(configPath string) (*zap.Logger, func(string, ...interface{}), func() error) {
	resolver := chatconfig.NewResolver()
	cfg, err := resolver.Load(configPath)
	logDir := "./.logs"
	if err == nil {
		logDir = cfg.GetString("paths.log_location", logDir, "")
	}
	if home, herr := os.UserHomeDir(); herr == nil && strings.HasPrefix(logDir, "~") {
		logDir = filepath.Join(home, strings.TrimPrefix(logDir, "~"))
	}
	_ = os.MkdirAll(logDir, 0o755)

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zcfg.OutputPaths = []string{filepath.Join(logDir, "chatloop.log")}
	zcfg.ErrorOutputPaths = []string{filepath.Join(logDir, "chatloop.log")}
	logger, buildErr := zcfg.Build()
	if buildErr != nil {
		logger = zap.NewNop()
	}
	sugar := logger.Sugar()
	return logger, func(format string, args ...interface{}) {
		sugar.Debugf(format, args...)
	}, logger.Sync
}
