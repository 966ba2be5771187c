package flowconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the externally supplied framework configuration: the topic
// sequence, the keyword-to-field extraction table, the safety keyword
// tables, and the message templates. The engine is generic over it.
type Config struct {
	Welcome string `yaml:"welcome"`
	Closing string `yaml:"closing"` // sent for any message after the summary

	Topics     []TopicConfig    `yaml:"topics"`
	Extraction []ExtractionRule `yaml:"extraction"`
	Safety     SafetyConfig     `yaml:"safety"`
	Limits     Limits           `yaml:"limits"`

	// Encouragements are used instead of a generative follow-up when the
	// user's answer is too vague to extract anything from.
	Encouragements []string `yaml:"encouragements"`

	// SummaryTemplate is a text/template body rendered when the
	// conversation terminates. Missing fields render as a neutral
	// placeholder.
	SummaryTemplate string `yaml:"summaryTemplate"`
}

// TopicConfig defines one unit of the conversation agenda.
type TopicConfig struct {
	Name string `yaml:"name"`

	// RequireAll and RequireAny drive the topic's completion predicate:
	// the topic is satisfied when every RequireAll field is set and, if
	// RequireAny is non-empty, at least one of those fields is set.
	RequireAll []string `yaml:"requireAll"`
	RequireAny []string `yaml:"requireAny"`

	// Prompts are candidate questions for this topic, asked sequentially
	// without repeating while an unused one remains.
	Prompts []string `yaml:"prompts"`

	// Celebration is a text/template line emitted when the topic
	// completes. It may reference extracted fields via {{field "name"}}.
	Celebration string `yaml:"celebration"`
}

// ExtractionRule records value under field when keyword appears in a user
// utterance. Multi rules accumulate a set; others are last-match-wins.
type ExtractionRule struct {
	Field   string `yaml:"field"`
	Keyword string `yaml:"keyword"`
	Value   string `yaml:"value"`
	Multi   bool   `yaml:"multi"`
}

// SafetyConfig holds the classifier keyword tables. Violations are
// evaluated in listed order, before completion and frustration signals.
type SafetyConfig struct {
	Violations  []ViolationCategory `yaml:"violations"`
	Completion  []string            `yaml:"completion"`
	Frustration []string            `yaml:"frustration"`
}

// ViolationCategory is one policy-violation class with its fixed redirect
// responses. Redirects never reach the generative backend.
type ViolationCategory struct {
	Kind      string   `yaml:"kind"`
	Keywords  []string `yaml:"keywords"`
	Responses []string `yaml:"responses"`
}

// Limits are the global early-exit thresholds. Zero disables a limit.
type Limits struct {
	MaxUserTurns    int `yaml:"maxUserTurns"`
	MinTopicBreadth int `yaml:"minTopicBreadth"`
}

// Load reads and validates a framework configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow config: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing flow config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants. A config that fails here is a
// fatal configuration error; it is never recoverable at runtime.
func (c *Config) Validate() error {
	if len(c.Topics) == 0 {
		return fmt.Errorf("flow config: topic sequence is empty")
	}

	seen := map[string]bool{}
	for i, t := range c.Topics {
		if t.Name == "" {
			return fmt.Errorf("flow config: topic %d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("flow config: duplicate topic %q", t.Name)
		}
		seen[t.Name] = true

		if len(t.Prompts) == 0 {
			return fmt.Errorf("flow config: topic %q has no prompts", t.Name)
		}
		if len(t.RequireAll) == 0 && len(t.RequireAny) == 0 {
			return fmt.Errorf("flow config: topic %q has no completion requirement", t.Name)
		}
	}

	for i, v := range c.Safety.Violations {
		if v.Kind == "" {
			return fmt.Errorf("flow config: safety category %d has no kind", i)
		}
	}

	return nil
}
