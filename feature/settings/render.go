package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Renderer expands template directives in profile documents before parsing.
//
// The environment is an explicit map rather than ambient process state so
// tests can supply deterministic values. Templates see it as "env":
//
//	picture-uri='file://{{ env.HOME }}/wallpaper.png'
type Renderer struct {
	env map[string]string
}

// NewRenderer creates a renderer exposing the given environment map.
func NewRenderer(env map[string]string) *Renderer {
	if env == nil {
		env = map[string]string{}
	}
	return &Renderer{env: env}
}

// ProcessEnv returns the current process environment as a map, suitable for
// NewRenderer. Variables loaded from .env by the config layer are included
// since godotenv exports them into the process.
func ProcessEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[name] = value
	}
	return env
}

// Render expands one document. The name is used in error messages only.
func (r *Renderer) Render(name, text string) (string, error) {
	tpl, err := pongo2.FromString(text)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}

	out, err := tpl.Execute(pongo2.Context{"env": r.env})
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}

	return out, nil
}
