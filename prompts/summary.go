package prompts

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// missingPlaceholder renders in place of any field the conversation never
// filled in. Summaries must never fail on absent data.
const missingPlaceholder = "not specified yet"

// RenderSummary interpolates the extracted fields into the configured
// summary template. The template may use:
//
//	{{field "name"}}  first value of a field, or the placeholder
//	{{list "name"}}   all values joined with ", ", or the placeholder
//	{{topics}}        completed topics joined with ", "
func RenderSummary(templateBody string, record *schema.ConversationRecord) (string, error) {
	funcs := template.FuncMap{
		"field": func(name string) string {
			if v := record.Fields.Get(name); v != "" {
				return v
			}
			return missingPlaceholder
		},
		"list": func(name string) string {
			if vs := record.Fields.All(name); len(vs) > 0 {
				return strings.Join(vs, ", ")
			}
			return missingPlaceholder
		},
		"topics": func() string {
			return strings.Join(record.TopicsCompleted, ", ")
		},
	}

	tmpl, err := template.New("summary").Funcs(funcs).Parse(templateBody)
	if err != nil {
		return "", fmt.Errorf("parsing summary template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, record); err != nil {
		return "", fmt.Errorf("rendering summary template: %w", err)
	}

	return buf.String(), nil
}

// RenderCelebration interpolates a topic's celebration line with the same
// field helpers as the summary template.
func RenderCelebration(templateBody string, fields schema.Fields) (string, error) {
	funcs := template.FuncMap{
		"field": func(name string) string {
			if v := fields.Get(name); v != "" {
				return v
			}
			return "your learners"
		},
		"list": func(name string) string {
			if vs := fields.All(name); len(vs) > 0 {
				return strings.Join(vs, ", ")
			}
			return "your choices"
		},
	}

	tmpl, err := template.New("celebration").Funcs(funcs).Parse(templateBody)
	if err != nil {
		return "", fmt.Errorf("parsing celebration template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("rendering celebration template: %w", err)
	}

	return buf.String(), nil
}

func sortedFieldNames(fields schema.Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
