package prompt

import (
	"context"
	"fmt"
	"strings"
)

// Generator turns a free-form description into a call script
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

/** Keyword templates */

const appointmentTemplate = `Hello, this is [Agent Name] calling from [Company Name].
I'm calling to confirm your appointment scheduled for tomorrow at [Time].
Could you please confirm if you'll be able to make it?
If you need to reschedule, we have openings on [Alternative Date] at [Alternative Time].
Thank you for your time, and we look forward to seeing you soon.`

const followUpTemplate = `Hello, this is [Agent Name] from [Company Name].
I'm calling to follow up on our previous conversation regarding [Topic].
I wanted to check if you've had a chance to review the information we sent over.
Do you have any questions or concerns that I can address for you today?
Would you like me to provide any additional information or clarification?`

const surveyTemplate = `Hello, this is [Agent Name] calling from [Company Name].
We value your opinion and would appreciate if you could participate in a brief survey about your recent experience with us.
This will only take about 2-3 minutes of your time.
Your feedback will help us improve our services.
Would you be willing to answer a few questions now?`

const defaultTemplate = `Hello, this is [Agent Name] calling from [Company Name].
I'm reaching out regarding %s.
I wanted to discuss this matter with you and provide any information you might need.
Is this a good time to talk, or would you prefer I call back at a more convenient time?
Thank you for your attention, and I look forward to speaking with you.`

// TemplateGenerator picks a canned script by keyword
type TemplateGenerator struct{}

// NewTemplateGenerator creates a keyword template generator
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate returns the template matching the first keyword group found in input
func (g *TemplateGenerator) Generate(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("input cannot be empty")
	}

	lower := strings.ToLower(input)
	switch {
	case containsAny(lower, "appointment", "schedule"):
		return appointmentTemplate, nil
	case containsAny(lower, "follow up", "followup"):
		return followUpTemplate, nil
	case containsAny(lower, "survey", "feedback"):
		return surveyTemplate, nil
	default:
		return fmt.Sprintf(defaultTemplate, input), nil
	}
}

// containsAny reports whether s contains any of the keywords
func containsAny(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
