package flowconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Welcome)
	assert.NotEmpty(t, cfg.Closing)
	assert.NotEmpty(t, cfg.Topics)
	assert.NotEmpty(t, cfg.Extraction)
	assert.NotEmpty(t, cfg.Safety.Violations)
	assert.NotEmpty(t, cfg.SummaryTemplate)
}

func TestDefault_TopicOrder(t *testing.T) {
	cfg := Default()

	names := make([]string, 0, len(cfg.Topics))
	for _, topic := range cfg.Topics {
		names = append(names, topic.Name)
	}

	assert.Equal(t, []string{
		"learner_understanding",
		"experience_level",
		"goals",
		"ai_tools",
		"assessment",
		"ethics_inclusion",
	}, names)
}

func TestLoad_FromFile(t *testing.T) {
	body := `
welcome: "hi"
closing: "bye"
topics:
  - name: only
    requireAny: [x]
    prompts: ["what is x?"]
`
	path := filepath.Join(t.TempDir(), "flow.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "hi", cfg.Welcome)
	assert.Len(t, cfg.Topics, 1)
	assert.Equal(t, []string{"x"}, cfg.Topics[0].RequireAny)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	valid := func() *Config {
		return &Config{Topics: []TopicConfig{
			{Name: "a", RequireAny: []string{"x"}, Prompts: []string{"p"}},
		}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no topics", func(c *Config) { c.Topics = nil }},
		{"unnamed topic", func(c *Config) { c.Topics[0].Name = "" }},
		{"no prompts", func(c *Config) { c.Topics[0].Prompts = nil }},
		{"no requirements", func(c *Config) {
			c.Topics[0].RequireAll = nil
			c.Topics[0].RequireAny = nil
		}},
		{"duplicate topic", func(c *Config) {
			c.Topics = append(c.Topics, c.Topics[0])
		}},
		{"unnamed safety category", func(c *Config) {
			c.Safety.Violations = []ViolationCategory{{Keywords: []string{"x"}}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			assert.NoError(t, cfg.Validate())
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParse_BadYaml(t *testing.T) {
	_, err := Parse([]byte("topics: [unclosed"))
	assert.Error(t, err)
}
