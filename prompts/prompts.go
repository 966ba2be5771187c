package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

//go:embed templates/*
var templatesFS embed.FS

func loadPrompt(templatePath string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// RenderFollowUp builds the system and user prompts for the generative
// backend: the active topic, a snapshot of extracted fields, the recent
// utterance window, and an instruction to ask exactly one follow-up
// question.
func RenderFollowUp(activeTopic string, record *schema.ConversationRecord, window int) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/followup_system.md", map[string]string{})
	if err != nil {
		return "", "", fmt.Errorf("rendering follow-up system prompt: %w", err)
	}

	fieldLines := []string{}
	for _, name := range sortedFieldNames(record.Fields) {
		fieldLines = append(fieldLines, fmt.Sprintf("- %s: %s", name, strings.Join(record.Fields[name], ", ")))
	}

	turns := []string{}
	for _, u := range record.RecentWindow(window) {
		turns = append(turns, fmt.Sprintf("%s: %s", u.Speaker, u.Text))
	}

	userPrompt, err = loadPrompt("templates/followup_user.md", map[string]interface{}{
		"ActiveTopic": activeTopic,
		"Fields":      strings.Join(fieldLines, "\n"),
		"RecentTurns": strings.Join(turns, "\n"),
	})
	if err != nil {
		return "", "", fmt.Errorf("rendering follow-up user prompt: %w", err)
	}

	return systemPrompt, userPrompt, nil
}
