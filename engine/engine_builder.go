package engine

import (
	"time"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/classifier"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/composer"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/extractor"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flow"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/llm"
)

type EngineBuilder struct {
	cfg        *flowconfig.Config
	generator  llm.LLMClient
	selector   composer.Selector
	genTimeout time.Duration
}

func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{}
}

// WithConfig sets the framework configuration (topics, extraction rules,
// safety tables, templates). Required.
func (b *EngineBuilder) WithConfig(cfg *flowconfig.Config) *EngineBuilder {
	b.cfg = cfg
	return b
}

// WithGenerator sets the optional generative backend for follow-up
// phrasing. Without one, the engine uses fixed prompts only.
func (b *EngineBuilder) WithGenerator(client llm.LLMClient) *EngineBuilder {
	b.generator = client
	return b
}

// WithSelector sets the phrasing selection strategy.
func (b *EngineBuilder) WithSelector(sel composer.Selector) *EngineBuilder {
	b.selector = sel
	return b
}

// WithGenerateTimeout bounds each generative backend call.
func (b *EngineBuilder) WithGenerateTimeout(d time.Duration) *EngineBuilder {
	b.genTimeout = d
	return b
}

// Build validates the configuration and assembles the engine. A missing or
// invalid topic sequence is a fatal configuration error surfaced here, at
// startup, never mid-conversation.
func (b *EngineBuilder) Build() (*Engine, error) {
	cfg := b.cfg
	if cfg == nil {
		cfg = flowconfig.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seq, err := flow.NewSequence(cfg)
	if err != nil {
		return nil, err
	}

	cls := classifier.New(cfg.Safety)

	return &Engine{
		cfg:        cfg,
		sequence:   seq,
		classifier: cls,
		extractor:  extractor.New(cfg.Extraction),
		composer:   composer.New(seq, cfg, cls, b.generator, b.selector, b.genTimeout),
	}, nil
}
