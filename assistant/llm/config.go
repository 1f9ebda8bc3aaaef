package llm

import "strings"

// DefaultModel is the pinned model identifier. Always used unless the
// deployment explicitly chooses another via LLM_MODEL.
const DefaultModel = "gpt-4o"

type Config struct {
	Model              string  `envconfig:"MODEL" split_words:"true"`
	MaxCompletionToken int     `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1200"`
	Temperature        float32 `envconfig:"TEMPERATURE" split_words:"true" default:"0.4"`
}

func (c Config) ModelName() string {
	if v := strings.TrimSpace(c.Model); v != "" {
		return v
	}
	return DefaultModel
}
