package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	APIVersionV1     = "amrules.dev/v1"
	KindFunctionSLOs = "FunctionSLOs"
)

type File struct {
	APIVersion string       `yaml:"apiVersion"`
	Kind       string       `yaml:"kind"`
	SLOs       []Descriptor `yaml:"slos"`
}

type Descriptor struct {
	Function    Literal  `yaml:"function"`
	Module      Literal  `yaml:"module"`
	SuccessRate Literal  `yaml:"successRate"`
	Latency     *Latency `yaml:"latency"`
}

type Latency struct {
	Threshold Literal `yaml:"threshold"`
	Target    Literal `yaml:"target"`
}

// Literal is a scalar carried verbatim into generated rule text; it must be
// spelled as a non-blank YAML string.
type Literal string

func (l *Literal) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag != "!!str" {
		return fmt.Errorf("line %d: expected a string, got %s", value.Line, value.Tag)
	}
	if strings.TrimSpace(value.Value) == "" {
		return fmt.Errorf("line %d: value must not be blank", value.Line)
	}
	*l = Literal(value.Value)
	return nil
}

func (f File) Validate() error {
	var errs []string
	if f.APIVersion != APIVersionV1 {
		errs = append(errs, fmt.Sprintf("apiVersion must be %q", APIVersionV1))
	}
	if f.Kind != KindFunctionSLOs {
		errs = append(errs, fmt.Sprintf("kind must be %q", KindFunctionSLOs))
	}
	if len(f.SLOs) == 0 {
		errs = append(errs, "at least one descriptor is required")
	}

	for i, d := range f.SLOs {
		prefix := fmt.Sprintf("slos[%d]", i)
		for _, err := range validateDescriptor(d) {
			errs = append(errs, fmt.Sprintf("%s: %s", prefix, err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDescriptor(d Descriptor) []string {
	var errs []string
	if strings.TrimSpace(string(d.Function)) == "" {
		errs = append(errs, "function is required")
	}
	if strings.TrimSpace(string(d.Module)) == "" {
		errs = append(errs, "module is required")
	}
	if strings.TrimSpace(string(d.SuccessRate)) == "" && d.Latency == nil {
		errs = append(errs, "at least one of successRate or latency is required")
	}
	if d.Latency != nil {
		if strings.TrimSpace(string(d.Latency.Threshold)) == "" {
			errs = append(errs, "latency.threshold is required")
		}
		if strings.TrimSpace(string(d.Latency.Target)) == "" {
			errs = append(errs, "latency.target is required")
		}
	}
	return errs
}
