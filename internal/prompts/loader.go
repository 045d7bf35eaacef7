// Package prompts holds the consultant's prompt library.
//
// Templates live in JSON files embedded into the binary: consultant.json
// carries the model-facing persona prompts, replies.json the canned
// deterministic replies used when no model client is configured. Each file
// maps a prompt key to template text. Placeholders use {{.Name}} syntax
// and are substituted by Format.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var library embed.FS

// loaded caches each parsed file, so a lookup costs one map read after
// the first use of a file.
var loaded sync.Map // filename -> map[string]string

// Get returns the template stored under key in the given file. The
// filename is relative to the package directory ("replies.json").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}

	tpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tpl, nil
}

// MustGet is Get for prompts the binary cannot run without. A missing
// file or key here means the embedded library is broken, so it panics.
func MustGet(filename, key string) string {
	tpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return tpl
}

// Format substitutes {{.Key}} placeholders in tpl with the matching
// values. Placeholders without a value are left in place.
func Format(tpl string, values map[string]string) string {
	if len(values) == 0 {
		return tpl
	}

	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// List returns the prompt keys available in a file.
func List(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	return keys, nil
}

// Reset drops all cached files. Tests use it to force re-parsing.
func Reset() {
	loaded.Clear()
}

func load(filename string) (map[string]string, error) {
	if cached, ok := loaded.Load(filename); ok {
		return cached.(map[string]string), nil
	}

	raw, err := library.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", filename, err)
	}

	templates := make(map[string]string)
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", filename, err)
	}

	actual, _ := loaded.LoadOrStore(filename, templates)
	return actual.(map[string]string), nil
}
