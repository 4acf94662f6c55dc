package script

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
)

// YAMLLoader loads scripts written in YAML.
type YAMLLoader struct{}

// NewYAMLLoader creates a YAML loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

type yamlScript struct {
	Steps []yamlStep `yaml:"steps"`
}

// yamlStep holds exactly one of Set, Clear, Expect or Print.
type yamlStep struct {
	Set    *string `yaml:"set"`
	Clear  *string `yaml:"clear"`
	Expect *string `yaml:"expect"`
	Print  *string `yaml:"print"`

	Content string  `yaml:"content"`
	Error   string  `yaml:"error"`
	Value   *string `yaml:"value"`
	Text    *string `yaml:"text"`

	line int
}

func (s *yamlStep) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlStep
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line = node.Line
	return nil
}

// Load implements Loader.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading YAML script.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	model, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	model.Source = path

	logger.Debug("Loaded YAML script.", "path", path, "steps", len(model.Steps))
	return model, nil
}

func parseYAML(data []byte) (*Model, error) {
	var doc yamlScript
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	model := &Model{Steps: make([]*Step, 0, len(doc.Steps))}
	for i := range doc.Steps {
		step, err := doc.Steps[i].toStep()
		if err != nil {
			return nil, fmt.Errorf("step %d (line %d): %w", i+1, doc.Steps[i].line, err)
		}
		model.Steps = append(model.Steps, step)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *yamlStep) toStep() (*Step, error) {
	step := &Step{
		Content:     s.Content,
		ExpectError: s.Error,
		Value:       s.Value,
		Text:        s.Text,
		Line:        s.line,
	}

	ops := 0
	if s.Set != nil {
		step.Op, step.Cell = OpSet, *s.Set
		ops++
	}
	if s.Clear != nil {
		step.Op, step.Cell = OpClear, *s.Clear
		ops++
	}
	if s.Expect != nil {
		step.Op, step.Cell = OpExpect, *s.Expect
		ops++
	}
	if s.Print != nil {
		step.Op, step.Mode = OpPrint, *s.Print
		ops++
	}

	if ops != 1 {
		return nil, fmt.Errorf("a step needs exactly one of set, clear, expect or print, found %d", ops)
	}
	return step, nil
}
