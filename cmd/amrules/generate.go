package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amtools/amrules/internal/export/operator"
	"github.com/amtools/amrules/internal/export/promfile"
	"github.com/amtools/amrules/internal/rules"
)

func runGenerate(args []string) error {
	fs, opts := baseFlags("generate", args)
	out := fs.String("o", "", "output path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := loadDescriptors(opts)
	if err != nil {
		return err
	}
	ruleOpts, err := ruleOptions(opts)
	if err != nil {
		return err
	}
	groups := rules.Build(file.SLOs, ruleOpts)
	if *out == "" {
		fmt.Fprint(os.Stdout, promfile.Render(groups))
		return nil
	}
	if err := promfile.Write(*out, groups); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d rule groups to %s\n", len(groups), *out)
	return nil
}

func runExport(args []string) error {
	if len(args) == 0 {
		return errors.New("export requires a format: operator")
	}
	switch args[0] {
	case "operator":
		return runExportOperator(args[1:])
	default:
		return fmt.Errorf("unknown export format %q", args[0])
	}
}

func runExportOperator(args []string) error {
	fs, opts := baseFlags("export operator", args)
	out := fs.String("o", "", "output path (default stdout)")
	name := fs.String("name", "autometrics-slo-rules", "PrometheusRule resource name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := loadDescriptors(opts)
	if err != nil {
		return err
	}
	ruleOpts, err := ruleOptions(opts)
	if err != nil {
		return err
	}
	groups := rules.Build(file.SLOs, ruleOpts)
	if *out == "" {
		fmt.Fprint(os.Stdout, operator.Render(*name, groups))
		return nil
	}
	if err := operator.Write(*out, *name, groups); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote PrometheusRule manifest to %s\n", *out)
	return nil
}
