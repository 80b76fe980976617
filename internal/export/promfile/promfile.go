package promfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/amtools/amrules/internal/rules"
)

const header = `---
# Prometheus recording and alerting rules generated by amrules

groups:
`

func Render(groups []rules.Group) string {
	rendered := make([]string, 0, len(groups))
	for _, group := range groups {
		rendered = append(rendered, RenderGroup(group, ""))
	}
	return header + strings.Join(rendered, "\n")
}

func Write(path string, groups []rules.Group) error {
	if err := os.WriteFile(path, []byte(Render(groups)), 0644); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

func RenderGroup(group rules.Group, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s- name: %s\n", indent, group.Name)
	fmt.Fprintf(&b, "%s  rules:\n", indent)
	for _, rule := range group.Rules {
		writeRule(&b, rule, indent)
	}
	return b.String()
}

func writeRule(b *strings.Builder, rule rules.Rule, indent string) {
	if rule.Record != "" {
		fmt.Fprintf(b, "%s  - record: %s\n", indent, rule.Record)
	} else {
		fmt.Fprintf(b, "%s  - alert: %s\n", indent, rule.Alert)
	}
	writeExpr(b, rule.Expr, indent)
	if len(rule.Labels) > 0 {
		fmt.Fprintf(b, "%s    labels:\n", indent)
		writePairs(b, rule.Labels, indent)
	}
	if len(rule.Annotations) > 0 {
		fmt.Fprintf(b, "%s    annotations:\n", indent)
		writePairs(b, rule.Annotations, indent)
	}
}

func writeExpr(b *strings.Builder, expr string, indent string) {
	if !strings.Contains(expr, "\n") {
		fmt.Fprintf(b, "%s    expr: %s\n", indent, expr)
		return
	}
	fmt.Fprintf(b, "%s    expr: |\n", indent)
	for _, line := range strings.Split(expr, "\n") {
		fmt.Fprintf(b, "%s      %s\n", indent, line)
	}
}

func writePairs(b *strings.Builder, pairs []rules.Label, indent string) {
	for _, pair := range pairs {
		fmt.Fprintf(b, "%s      %s: %s\n", indent, pair.Name, pair.Value)
	}
}
