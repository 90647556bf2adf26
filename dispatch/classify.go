package dispatch

import "strings"

// Kind enumerates the InputClassification variants of §3/§4.3.
type Kind int

const (
	KindEmpty Kind = iota
	KindMultilineStart
	KindBuiltin
	KindTemplate
	KindPrompt
)

// Builtin names a builtin command, with "quit" already normalized to
// its "exit" alias.
type Builtin int

const (
	BuiltinHelp Builtin = iota
	BuiltinInfo
	BuiltinTemplates
	BuiltinClear
	BuiltinExit
)

// Classification is the result of classifying one completed input.
type Classification struct {
	Kind Kind

	Builtin Builtin // valid when Kind == KindBuiltin

	TemplateName    string // valid when Kind == KindTemplate
	TrailingContext string // valid when Kind == KindTemplate

	Text string // valid when Kind == KindPrompt: the trimmed input
}

var builtinNames = map[string]Builtin{
	"help":      BuiltinHelp,
	"info":      BuiltinInfo,
	"templates": BuiltinTemplates,
	"clear":     BuiltinClear,
	"exit":      BuiltinExit,
	"quit":      BuiltinExit,
}

// Classify implements the ordered rules of §4.3 exactly: empty input is
// ignored; exactly two backslashes (`\\`) begin multi-line mode; case-insensitive
// builtin names dispatch locally; a leading "/word" names a template
// invocation; anything else is an ordinary prompt.
func Classify(input string) Classification {
	trimmed := strings.TrimSpace(input)

	if trimmed == "" {
		return Classification{Kind: KindEmpty}
	}
	if trimmed == `\\` {
		return Classification{Kind: KindMultilineStart}
	}
	if b, ok := builtinNames[strings.ToLower(trimmed)]; ok {
		return Classification{Kind: KindBuiltin, Builtin: b}
	}
	if strings.HasPrefix(trimmed, "/") {
		rest := trimmed[1:]
		if name, ok := leadingWord(rest); ok {
			context := strings.TrimSpace(rest[len(name):])
			return Classification{Kind: KindTemplate, TemplateName: name, TrailingContext: context}
		}
	}
	return Classification{Kind: KindPrompt, Text: trimmed}
}

// leadingWord returns the longest prefix of s made of word characters
// (letters, digits, underscore), requiring at least one.
func leadingWord(s string) (string, bool) {
	i := 0
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	if i == 0 {
		return "", false
	}
	return s[:i], true
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
