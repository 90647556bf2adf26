package dispatch

import "testing"

func TestClassifyEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if got := Classify(in); got.Kind != KindEmpty {
			t.Errorf("Classify(%q).Kind = %v, want KindEmpty", in, got.Kind)
		}
	}
}

func TestClassifyMultilineStart(t *testing.T) {
	got := Classify(`\\`)
	if got.Kind != KindMultilineStart {
		t.Errorf("got %v, want KindMultilineStart", got.Kind)
	}
}

func TestClassifyBuiltins(t *testing.T) {
	cases := map[string]Builtin{
		"help":      BuiltinHelp,
		"INFO":      BuiltinInfo,
		" templates ": BuiltinTemplates,
		"clear":     BuiltinClear,
		"exit":      BuiltinExit,
		"quit":      BuiltinExit,
	}
	for in, want := range cases {
		got := Classify(in)
		if got.Kind != KindBuiltin || got.Builtin != want {
			t.Errorf("Classify(%q) = %+v, want builtin %v", in, got, want)
		}
	}
}

func TestClassifyTemplate(t *testing.T) {
	got := Classify("/review code X")
	if got.Kind != KindTemplate {
		t.Fatalf("got kind %v", got.Kind)
	}
	if got.TemplateName != "review" || got.TrailingContext != "code X" {
		t.Errorf("got name=%q context=%q", got.TemplateName, got.TrailingContext)
	}
}

func TestClassifyTemplateNoContext(t *testing.T) {
	got := Classify("/review")
	if got.Kind != KindTemplate || got.TemplateName != "review" || got.TrailingContext != "" {
		t.Errorf("got %+v", got)
	}
}

func TestClassifySlashWithNoWordCharsIsOrdinaryPrompt(t *testing.T) {
	got := Classify("/ not a template")
	if got.Kind != KindPrompt {
		t.Errorf("got kind %v, want KindPrompt", got.Kind)
	}
}

func TestClassifyOrdinaryPrompt(t *testing.T) {
	got := Classify("  what is the weather  ")
	if got.Kind != KindPrompt || got.Text != "what is the weather" {
		t.Errorf("got %+v", got)
	}
}
