package operator

import (
	"fmt"
	"os"
	"strings"

	"github.com/amtools/amrules/internal/export/promfile"
	"github.com/amtools/amrules/internal/rules"
)

const manifestHeader = `---
apiVersion: monitoring.coreos.com/v1
kind: PrometheusRule
metadata:
  name: %s
  labels:
    app.kubernetes.io/managed-by: amrules
spec:
`

func Render(name string, groups []rules.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, manifestHeader, sanitizeName(name))
	if len(groups) == 0 {
		b.WriteString("  groups: []\n")
		return b.String()
	}
	b.WriteString("  groups:\n")
	for _, group := range groups {
		b.WriteString(promfile.RenderGroup(group, "  "))
	}
	return b.String()
}

func Write(path, name string, groups []rules.Group) error {
	if err := os.WriteFile(path, []byte(Render(name, groups)), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func sanitizeName(input string) string {
	normalized := strings.ToLower(input)
	var out []rune
	lastDash := false
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			lastDash = false
			continue
		}
		if !lastDash {
			out = append(out, '-')
			lastDash = true
		}
	}
	result := strings.Trim(string(out), "-")
	if result == "" {
		return "amrules"
	}
	return result
}
