package config

import (
	"embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

// ErrNoContent is returned when a content file parses but holds nothing usable.
var ErrNoContent = errors.New("config: empty content")

// Question is one multiple-choice quiz question.
type Question struct {
	Question string   `yaml:"question"`
	Choices  []string `yaml:"choices"`
	Answer   int      `yaml:"answer"` // Index into Choices
}

// Valid reports whether the answer index points at a choice.
func (q Question) Valid() bool {
	return q.Question != "" && len(q.Choices) >= 2 && q.Answer >= 0 && q.Answer < len(q.Choices)
}

type quizFile struct {
	Questions []Question `yaml:"questions"`
}

type wordsFile struct {
	Words []string `yaml:"words"`
}

// LoadQuestions returns the embedded quiz questions, dropping invalid ones.
func LoadQuestions() ([]Question, error) {
	data, err := contentFS.ReadFile("content/quiz.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: read quiz: %w", err)
	}
	return ParseQuestions(data)
}

// ParseQuestions decodes a quiz YAML document.
func ParseQuestions(data []byte) ([]Question, error) {
	var f quizFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse quiz: %w", err)
	}
	out := f.Questions[:0]
	for _, q := range f.Questions {
		if q.Valid() {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoContent
	}
	return out, nil
}

// LoadWords returns the embedded hangman word pool.
func LoadWords() ([]string, error) {
	data, err := contentFS.ReadFile("content/words.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: read words: %w", err)
	}
	var f wordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse words: %w", err)
	}
	if len(f.Words) == 0 {
		return nil, ErrNoContent
	}
	return f.Words, nil
}
