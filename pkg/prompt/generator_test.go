package prompt

import (
	"context"
	"testing"

	"github.com/ethanbaker/calldash/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateGenerator(t *testing.T) {
	ctx := context.Background()
	g := NewTemplateGenerator()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"appointment", "Confirm my dentist Appointment", appointmentTemplate},
		{"schedule", "schedule a meeting", appointmentTemplate},
		{"follow up", "Follow up on the quote", followUpTemplate},
		{"followup", "followup about invoice", followUpTemplate},
		{"survey", "quick survey", surveyTemplate},
		{"feedback", "ask for feedback", surveyTemplate},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := g.Generate(ctx, test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	t.Run("default embeds input", func(t *testing.T) {
		got, err := g.Generate(ctx, "  the late library book ")
		require.NoError(t, err)
		assert.Contains(t, got, "I'm reaching out regarding the late library book.")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := g.Generate(ctx, "   ")
		assert.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("without api key", func(t *testing.T) {
		g := NewFromConfig(utils.NewConfig(nil))
		assert.IsType(t, &TemplateGenerator{}, g)
	})

	t.Run("with api key", func(t *testing.T) {
		g := NewFromConfig(utils.NewConfig(map[string]string{"OPENAI_API_KEY": "sk-test"}))
		require.IsType(t, &OpenAIGenerator{}, g)

		openaiGen := g.(*OpenAIGenerator)
		assert.Equal(t, DefaultInstructions, openaiGen.instructions)
		assert.NotEmpty(t, openaiGen.model)
	})

	t.Run("openai generator rejects empty input", func(t *testing.T) {
		g, err := NewOpenAIGenerator(utils.NewConfig(map[string]string{"OPENAI_API_KEY": "sk-test"}))
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("openai generator requires key", func(t *testing.T) {
		_, err := NewOpenAIGenerator(utils.NewConfig(nil))
		assert.Error(t, err)
	})
}
