package prompttemplate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Template is a named reusable prompt body.
type Template struct {
	Name string
	Body string
}

// Store discovers templates under Dir on demand, so new files appear
// without restart (§3's lifecycle note: "Templates are discovered
// lazily per invocation").
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at ~/.prompts.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(home, ".prompts")}, nil
}

// NotFoundError reports that a named template invocation has no
// corresponding file.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no template named %q", e.Name)
}

// Load reads the template named name (case-insensitive). Missing
// templates return a *NotFoundError.
func (s *Store) Load(name string) (*Template, error) {
	entries, err := s.list()
	if err != nil {
		return nil, err
	}
	name = strings.ToLower(name)
	for _, t := range entries {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// List returns all discovered templates in alphabetical order by name.
func (s *Store) List() ([]Template, error) {
	return s.list()
}

func (s *Store) list() ([]Template, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var templates []Template
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		stem := strings.TrimSuffix(name, ".md")
		body, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			continue
		}
		templates = append(templates, Template{Name: strings.ToLower(stem), Body: string(body)})
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// Description returns the first non-empty line of the template body,
// truncated to maxWidth runes, for the `templates` listing.
func Description(body string, maxWidth int) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxWidth {
			return string(runes[:maxWidth-1]) + "…"
		}
		return line
	}
	return ""
}

// Materialize substitutes context C into body B per §4.4:
//   - every occurrence of the literal placeholder "{input}" is replaced
//     by C when present;
//   - otherwise, if C is non-empty, the result is B, a blank line, then C;
//   - otherwise, the result is B unchanged.
func Materialize(body, context string) string {
	if strings.Contains(body, "{input}") {
		return strings.ReplaceAll(body, "{input}", context)
	}
	if context != "" {
		return body + "\n\n" + context
	}
	return body
}
