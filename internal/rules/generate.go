package rules

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/prometheus/common/model"

	"github.com/amtools/amrules/internal/descriptor"
	"github.com/amtools/amrules/internal/objective"
)

const sliErrorRatioFmt = "slo:sli_error:ratio_rate%s"

type Options struct {
	// ExtraLabels are attached to every generated rule, after the
	// engine's own labels. They never enter selectors or join clauses.
	ExtraLabels map[string]string
}

func Build(descriptors []descriptor.Descriptor, opts Options) []Group {
	var groups []Group
	for _, d := range descriptors {
		for _, o := range objective.Derive(d) {
			groups = append(groups, ForObjective(o, opts)...)
		}
	}
	return groups
}

func ForObjective(o objective.Objective, opts Options) []Group {
	return []Group{ErrorRatioRules(o, opts), MetaRules(o, opts), AlertRules(o, opts)}
}

func ErrorRatioRules(o objective.Objective, opts Options) Group {
	group := Group{Name: fmt.Sprintf("autometrics-slo-sli-recordings-%s-%s", o.ID(), o.Kind)}
	for _, window := range sliWindows {
		w := window.String()
		group.Rules = append(group.Rules, Rule{
			Record: sliErrorRatioName(window),
			Expr:   fmt.Sprintf("%s / %s", o.ErrorQuery(w), o.TotalQuery(w)),
			Labels: recordingLabels(o, w, opts),
		})
	}

	// The 30d ratio is the time-weighted average of the 5m series, not a
	// raw 30-day range query over the counters.
	filter := o.FilterLabels()
	group.Rules = append(group.Rules, Rule{
		Record: sliErrorRatioName(win30d),
		Expr: fmt.Sprintf("sum_over_time(%s%s[%s])\n/ ignoring(window)\ncount_over_time(%s%s[%s])",
			sliErrorRatioName(win5m), filter, win30d, sliErrorRatioName(win5m), filter, win30d),
		Labels: recordingLabels(o, win30d.String(), opts),
	})
	return group
}

func MetaRules(o objective.Objective, opts Options) Group {
	filter := o.FilterLabels()
	labels := recordingLabels(o, "", opts)
	budgetJoin := fmt.Sprintf(" / on(function, module, objective) group_left slo:error_budget:ratio%s", filter)
	return Group{
		Name: fmt.Sprintf("autometrics-slo-meta-recordings-%s-%s", o.ID(), o.Kind),
		Rules: []Rule{
			{Record: "slo:objective:ratio", Expr: fmt.Sprintf("vector(%s)", o.Target), Labels: labels},
			{Record: "slo:error_budget:ratio", Expr: fmt.Sprintf("vector(1 - %s)", o.Target), Labels: labels},
			{Record: "slo:time_period:days", Expr: fmt.Sprintf("vector(%d)", budgetPeriodDays), Labels: labels},
			{Record: "slo:current_burn_rate:ratio", Expr: sliErrorRatioName(win5m) + filter + budgetJoin, Labels: labels},
			{Record: "slo:period_burn_rate:ratio", Expr: sliErrorRatioName(win30d) + filter + budgetJoin, Labels: labels},
			{Record: "slo:period_error_budget_remaining:ratio", Expr: fmt.Sprintf("1 - slo:period_burn_rate:ratio%s", filter), Labels: labels},
		},
	}
}

func AlertRules(o objective.Objective, opts Options) Group {
	return Group{
		Name:  fmt.Sprintf("autometrics-slo-alerts-%s-%s", o.ID(), o.Kind),
		Rules: []Rule{pageAlert(o, opts), ticketAlert(o, opts)},
	}
}

func pageAlert(o objective.Objective, opts Options) Rule {
	return burnRateAlert(o, "page", burnBranch{win5m, win1h, 14.4}, burnBranch{win30m, win6h, 6}, opts)
}

func ticketAlert(o objective.Objective, opts Options) Rule {
	return burnRateAlert(o, "ticket", burnBranch{win2h, win1d, 3}, burnBranch{win6h, win3d, 1}, opts)
}

// Both severity tiers emit the same alert name; only the severity label
// tells them apart.
func burnRateAlert(o objective.Objective, severity string, first, second burnBranch, opts Options) Rule {
	errorRate := fmt.Sprintf("(1 - %s)", o.Target)
	return Rule{
		Alert:  fmt.Sprintf("HighErrorRate-%s-%s", o.ID(), o.Kind),
		Expr:   fmt.Sprintf("%s\nor\n%s", branchExpr(o, first, errorRate), branchExpr(o, second, errorRate)),
		Labels: append([]Label{{Name: "severity", Value: severity}}, extraLabels(opts)...),
		Annotations: []Label{
			{Name: "summary", Value: fmt.Sprintf("High error rate for function '%s' in module '%s'", o.Function, o.Module)},
			{Name: "title", Value: fmt.Sprintf("(%s) '%s' in module '%s' SLO error budget burn rate is too fast.", severity, o.Function, o.Module)},
		},
	}
}

func branchExpr(o objective.Objective, branch burnBranch, errorRate string) string {
	filter := o.FilterLabels()
	factor := strconv.FormatFloat(branch.factor, 'g', -1, 64)
	return fmt.Sprintf("(\n  max(%s%s > (%s * %s))\n  and\n  max(%s%s > (%s * %s))\n)",
		sliErrorRatioName(branch.short), filter, factor, errorRate,
		sliErrorRatioName(branch.long), filter, factor, errorRate)
}

func sliErrorRatioName(window model.Duration) string {
	return fmt.Sprintf(sliErrorRatioFmt, window)
}

func recordingLabels(o objective.Objective, window string, opts Options) []Label {
	labels := []Label{
		{Name: "objective", Value: string(o.Kind)},
		{Name: "function", Value: o.Function},
		{Name: "module", Value: o.Module},
	}
	if window != "" {
		labels = append(labels, Label{Name: "window", Value: window})
	}
	return append(labels, extraLabels(opts)...)
}

func extraLabels(opts Options) []Label {
	if len(opts.ExtraLabels) == 0 {
		return nil
	}
	names := make([]string, 0, len(opts.ExtraLabels))
	for name := range opts.ExtraLabels {
		names = append(names, name)
	}
	sort.Strings(names)
	labels := make([]Label, 0, len(names))
	for _, name := range names {
		labels = append(labels, Label{Name: name, Value: opts.ExtraLabels[name]})
	}
	return labels
}
