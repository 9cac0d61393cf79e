package tools

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step is one stage of a pipeline.
type Step struct {
	Tool    string         `json:"tool" yaml:"tool"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Pipeline feeds input through steps in order, each step reading the text
// rendering of the previous result. The last step's result is returned.
// Tools that compare two texts cannot be chained.
func (r *Registry) Pipeline(input string, steps []Step) (Result, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: pipeline has no steps", ErrMissingInput)
	}

	var res Result = ConversionResult{Output: input}
	for i, step := range steps {
		t, err := r.Describe(step.Tool)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if t.NeedsOther {
			return nil, fmt.Errorf("%w: step %d: %s needs a second text", ErrInvalidOption, i+1, t.Name)
		}
		res, err = r.Run(Request{Tool: t.Name, Input: res.Text(), Options: step.Options})
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return res, nil
}

// ParsePipeline reads a list of steps from YAML or JSON.
func ParsePipeline(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("%w: pipeline: %v", ErrInvalidOption, err)
	}
	for i, s := range steps {
		if strings.TrimSpace(s.Tool) == "" {
			return nil, fmt.Errorf("%w: step %d has no tool", ErrInvalidOption, i+1)
		}
	}
	return steps, nil
}

// ParseStep reads the compact "tool key=value ..." form of a step.
func ParseStep(fields []string) (Step, error) {
	if len(fields) == 0 {
		return Step{}, errors.New("empty step")
	}
	opts, err := ParseOptions(fields[1:])
	if err != nil {
		return Step{}, err
	}
	return Step{Tool: fields[0], Options: opts}, nil
}
