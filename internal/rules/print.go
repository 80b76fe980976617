package rules

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amtools/amrules/internal/descriptor"
	"github.com/amtools/amrules/internal/objective"
)

func Render(w io.Writer, descriptors []descriptor.Descriptor) {
	total := 0
	fmt.Fprintln(w, "Objectives:")
	for _, d := range descriptors {
		for _, o := range objective.Derive(d) {
			groups := ForObjective(o, Options{})
			total += len(groups)
			if budget, ok := errorBudget(o.Target); ok {
				fmt.Fprintf(w, "- %s (%s, target %s, error budget %s)\n", o.ID(), o.Kind, o.Target, budget)
			} else {
				fmt.Fprintf(w, "- %s (%s, target %s)\n", o.ID(), o.Kind, o.Target)
			}
			for _, group := range groups {
				fmt.Fprintf(w, "  %s: %d rules\n", group.Name, len(group.Rules))
			}
		}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Rule groups: %d\n", total)
}

func errorBudget(target string) (string, bool) {
	value, err := strconv.ParseFloat(target, 64)
	if err != nil || value < 0 || value > 1 {
		return "", false
	}
	return fmt.Sprintf("%.4g%%", (1-value)*100), true
}
