package classifier

import (
	"strings"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// Classifier scans a single inbound message against the configured safety
// keyword tables. It is deterministic, total, and side-effect free:
// violations are evaluated in configured order, and always before
// completion or frustration signals, since safety pre-empts flow control.
type Classifier struct {
	cfg flowconfig.SafetyConfig
}

func New(cfg flowconfig.SafetyConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns the verdict for one message. Clean is the default when
// nothing matches. A message matching both a violation keyword and a
// completion keyword resolves to the violation.
func (c *Classifier) Classify(message string) schema.Verdict {
	lower := strings.ToLower(message)

	for _, cat := range c.cfg.Violations {
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				return schema.Verdict{
					Kind:      schema.VerdictPolicyViolation,
					Violation: schema.ViolationKind(cat.Kind),
					Matched:   kw,
				}
			}
		}
	}

	for _, kw := range c.cfg.Completion {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return schema.Verdict{Kind: schema.VerdictCompletionSignal, Matched: kw}
		}
	}

	for _, kw := range c.cfg.Frustration {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return schema.Verdict{Kind: schema.VerdictFrustrationSignal, Matched: kw}
		}
	}

	return schema.Clean()
}

// Redirect returns the fixed responses configured for a violation kind.
func (c *Classifier) Redirect(kind schema.ViolationKind) []string {
	for _, cat := range c.cfg.Violations {
		if cat.Kind == string(kind) {
			return cat.Responses
		}
	}
	return nil
}
