package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
)

// EmotionPromptBuilder builds the system prompt for the emotion classifier
type EmotionPromptBuilder struct{}

// NewEmotionPromptBuilder creates a new emotion prompt builder
func NewEmotionPromptBuilder() *EmotionPromptBuilder {
	return &EmotionPromptBuilder{}
}

// BuildPrompt builds the complete system prompt for emotion classification
func (b *EmotionPromptBuilder) BuildPrompt() (string, error) {
	sections := []string{
		b.getSystemInstructions(),
		b.getEmotionVocabulary(),
		b.getOutputFormatInstructions(),
	}

	return strings.Join(sections, "\n\n"), nil
}

// getSystemInstructions returns the main classification instructions
func (b *EmotionPromptBuilder) getSystemInstructions() string {
	return `Analyze the following text and identify the primary emotion expressed. Return just a single word representing the emotion (e.g., happy, sad, excited, anxious, etc.).

When analyzing:
- Judge the overall feeling of the text, not individual words in isolation
- Negations flip the emotion: "not happy at all" is closer to sad than happy
- Mixed feelings resolve to the dominant one
- If the text expresses no clear emotion, answer "neutral"`
}

// getEmotionVocabulary lists the emotions the music catalog tunes for
func (b *EmotionPromptBuilder) getEmotionVocabulary() string {
	return `## Preferred Vocabulary

The music catalog tunes audio features per emotion, so these words map best:

` + strings.Join(mood.Emotions(), ", ") + `

Other single-word emotions are acceptable when none of the above fits.`
}

// getOutputFormatInstructions returns instructions for the output format
func (b *EmotionPromptBuilder) getOutputFormatInstructions() string {
	return `## Output Format

- Answer with exactly one lowercase word
- No punctuation, no explanation, no full sentences
- Examples of valid answers: happy, melancholic, anxious, neutral`
}
