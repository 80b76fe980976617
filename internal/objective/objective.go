package objective

import (
	"fmt"

	"github.com/amtools/amrules/internal/descriptor"
)

type Kind string

const (
	KindSuccessRate Kind = "success-rate"
	KindLatency     Kind = "latency"
)

type Objective struct {
	Kind     Kind
	Function string
	Module   string
	// Target is the objective fraction, reused as the success rate for
	// budget math on both kinds.
	Target string
	// ThresholdLabel is the histogram le bucket boundary; latency only.
	ThresholdLabel string
}

func Derive(d descriptor.Descriptor) []Objective {
	var objectives []Objective
	if d.SuccessRate != "" {
		objectives = append(objectives, Objective{
			Kind:     KindSuccessRate,
			Function: string(d.Function),
			Module:   string(d.Module),
			Target:   string(d.SuccessRate),
		})
	}
	if d.Latency != nil {
		objectives = append(objectives, Objective{
			Kind:           KindLatency,
			Function:       string(d.Function),
			Module:         string(d.Module),
			Target:         string(d.Latency.Target),
			ThresholdLabel: string(d.Latency.Threshold),
		})
	}
	return objectives
}

func (o Objective) ID() string {
	return fmt.Sprintf("%s-%s", o.Module, o.Function)
}

func (o Objective) FilterLabels() string {
	return fmt.Sprintf(`{function="%s",module="%s",objective="%s"}`, o.Function, o.Module, o.Kind)
}

func (o Objective) ErrorQuery(window string) string {
	if o.Kind == KindLatency {
		return fmt.Sprintf(`(sum(rate(function_calls_duration_bucket{function="%s",module="%s"}[%s])) - sum(rate(function_calls_duration_bucket{le="%s",function="%s",module="%s"}[%s])))`,
			o.Function, o.Module, window, o.ThresholdLabel, o.Function, o.Module, window)
	}
	return fmt.Sprintf(`sum(rate(function_calls_count{function="%s",module="%s",result="error"}[%s]))`, o.Function, o.Module, window)
}

func (o Objective) TotalQuery(window string) string {
	if o.Kind == KindLatency {
		return fmt.Sprintf(`sum(rate(function_calls_duration_bucket{function="%s",module="%s"}[%s]))`, o.Function, o.Module, window)
	}
	return fmt.Sprintf(`sum(rate(function_calls_count{function="%s",module="%s"}[%s]))`, o.Function, o.Module, window)
}
