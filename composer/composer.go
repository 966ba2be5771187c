package composer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/classifier"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flow"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/llm"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/prompts"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"go.uber.org/zap"
)

// recentWindow is how many utterances of context the generative backend
// sees.
const recentWindow = 6

// DefaultGenerateTimeout bounds the generative backend call. The state
// transition is already computed before the call, so a timeout only costs
// the nicer phrasing, never the turn.
const DefaultGenerateTimeout = 8 * time.Second

// Composer maps a transition decision to the outbound message: summary,
// celebration plus next question, fixed redirect, or a generative
// follow-up with a deterministic fallback.
type Composer struct {
	seq        *flow.Sequence
	cfg        *flowconfig.Config
	cls        *classifier.Classifier
	generator  llm.LLMClient // optional
	selector   Selector
	genTimeout time.Duration
}

func New(seq *flow.Sequence, cfg *flowconfig.Config, cls *classifier.Classifier, generator llm.LLMClient, selector Selector, genTimeout time.Duration) *Composer {
	if selector == nil {
		selector = NewRoundRobinSelector()
	}
	if genTimeout <= 0 {
		genTimeout = DefaultGenerateTimeout
	}
	return &Composer{
		seq:        seq,
		cfg:        cfg,
		cls:        cls,
		generator:  generator,
		selector:   selector,
		genTimeout: genTimeout,
	}
}

// ComposeRedirect returns the fixed boundary response for a policy
// violation. Redirects never call the generative backend.
func (c *Composer) ComposeRedirect(kind schema.ViolationKind) string {
	responses := c.cls.Redirect(kind)
	if len(responses) == 0 {
		return "Let's keep our focus on designing your course with the She Is AI framework. What should we work on next?"
	}
	return responses[c.selector.Pick(len(responses))]
}

// Compose renders the outbound message for a computed transition.
func (c *Composer) Compose(ctx context.Context, tr flow.Transition, analysis classifier.Analysis, record *schema.ConversationRecord) string {
	var parts []string

	for _, name := range tr.CompletedTopics {
		if line := c.celebrate(name, record.Fields); line != "" {
			parts = append(parts, line)
		}
	}

	switch {
	case tr.Summarize:
		parts = append(parts, c.summary(record))

	case tr.Terminal:
		// already terminal before this turn; just close out
		parts = append(parts, c.cfg.Closing)

	case tr.Completed():
		// a fresh topic just became active; ask its first unused
		// question directly rather than delegating
		parts = append(parts, c.askFixedPrompt(tr, record))

	case analysis.Vague && len(c.cfg.Encouragements) > 0:
		enc := c.cfg.Encouragements[c.selector.Pick(len(c.cfg.Encouragements))]
		parts = append(parts, enc)

	default:
		parts = append(parts, c.followUp(ctx, tr, record))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// celebrate renders a topic's celebration template, degrading to a plain
// acknowledgment when the template is broken.
func (c *Composer) celebrate(topicName string, fields schema.Fields) string {
	t, ok := c.seq.Topic(topicName)
	if !ok || t.Celebration == "" {
		return ""
	}

	line, err := prompts.RenderCelebration(t.Celebration, fields)
	if err != nil {
		logger.Error("celebration template failed",
			zap.String("topic", topicName), zap.Error(err))
		return fmt.Sprintf("Great progress on %s!", strings.ReplaceAll(topicName, "_", " "))
	}
	return line
}

// summary renders the closing summary document. Missing fields become
// placeholders; a broken template still produces a usable closing message.
func (c *Composer) summary(record *schema.ConversationRecord) string {
	out, err := prompts.RenderSummary(c.cfg.SummaryTemplate, record)
	if err != nil {
		logger.Error("summary template failed", zap.Error(err))
		return c.cfg.Closing
	}
	if c.cfg.Closing != "" {
		return out + "\n\n" + c.cfg.Closing
	}
	return out
}

// askFixedPrompt emits a topic's next unused question and moves the prompt
// cursor past it. The cursor must only move here: a prompt that was never
// sent stays next in line.
func (c *Composer) askFixedPrompt(tr flow.Transition, record *schema.ConversationRecord) string {
	if tr.Prompt == "" {
		return ""
	}
	c.seq.MarkPromptAsked(record, tr.ActiveTopic)
	return tr.Prompt
}

// followUp asks the generative backend for one contextual question about
// the active topic, falling back to the fixed prompt on any error or
// timeout. The failure never surfaces to the user. A generated question
// leaves the fixed prompt unused for a later turn.
func (c *Composer) followUp(ctx context.Context, tr flow.Transition, record *schema.ConversationRecord) string {
	if c.generator == nil || tr.Prompt == "" {
		return c.askFixedPrompt(tr, record)
	}

	systemPrompt, userPrompt, err := prompts.RenderFollowUp(tr.ActiveTopic, record, recentWindow)
	if err != nil {
		logger.Error("follow-up prompt rendering failed", zap.Error(err))
		return c.askFixedPrompt(tr, record)
	}

	genCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
	defer cancel()

	var reply strings.Builder
	err = c.generator.GenerateInference(
		genCtx,
		[]llm.Message{{Role: "user", Content: userPrompt}},
		func(chunk string) error {
			reply.WriteString(chunk)
			return nil
		},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(256),
	)
	if err != nil || strings.TrimSpace(reply.String()) == "" {
		logger.Error("generative follow-up failed, using fixed prompt",
			zap.String("topic", tr.ActiveTopic), zap.Error(err))
		return c.askFixedPrompt(tr, record)
	}

	return strings.TrimSpace(reply.String())
}
