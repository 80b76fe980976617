package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amtools/amrules/internal/alerting"
	"github.com/amtools/amrules/internal/descriptor"
	"github.com/amtools/amrules/internal/rules"
)

const version = "0.1.0"

type commandOptions struct {
	file   string
	labels string
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		if err := runGenerate(os.Args[2:]); err != nil {
			fail(err)
		}
	case "export":
		if err := runExport(os.Args[2:]); err != nil {
			fail(err)
		}
	case "plan":
		if err := runPlan(os.Args[2:]); err != nil {
			fail(err)
		}
	case "validate":
		if err := runValidate(os.Args[2:]); err != nil {
			fail(err)
		}
	case "explain":
		if err := runExplain(os.Args[2:]); err != nil {
			fail(err)
		}
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "amrules - Prometheus alerting rules for function-level SLOs")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  amrules generate -f slos.yaml -o rules.yaml")
	fmt.Fprintln(os.Stderr, "  amrules export operator -f slos.yaml -name my-rules")
	fmt.Fprintln(os.Stderr, "  amrules plan     -f slos.yaml")
	fmt.Fprintln(os.Stderr, "  amrules validate -f slos.yaml")
	fmt.Fprintln(os.Stderr, "  amrules explain burn-rate")
}

func baseFlags(cmd string, args []string) (*flag.FlagSet, *commandOptions) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := &commandOptions{}
	fs.StringVar(&opts.file, "f", "", "path to SLO descriptor file")
	fs.StringVar(&opts.labels, "labels", "", "extra rule labels in key=value,key=value format")
	return fs, opts
}

func ruleOptions(opts *commandOptions) (rules.Options, error) {
	extra, err := descriptor.ParseLabels(opts.labels)
	if err != nil {
		return rules.Options{}, err
	}
	return rules.Options{ExtraLabels: extra}, nil
}

func runPlan(args []string) error {
	fs, opts := baseFlags("plan", args)
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := loadDescriptors(opts)
	if err != nil {
		return err
	}
	rules.Render(os.Stdout, file.SLOs)
	return nil
}

func runValidate(args []string) error {
	fs, opts := baseFlags("validate", args)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(opts.file) == "" {
		return errors.New("-f is required")
	}
	file, err := descriptor.Load(opts.file)
	if err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return invalidInputError{err: err}
	}
	fmt.Fprintln(os.Stdout, "Descriptors are valid.")
	return nil
}

func runExplain(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: amrules explain burn-rate")
	}
	switch args[0] {
	case "burn-rate":
		fmt.Fprintln(os.Stdout, alerting.ExplainBurnRate())
		return nil
	default:
		return fmt.Errorf("unknown explain topic %q", args[0])
	}
}

func loadDescriptors(opts *commandOptions) (descriptor.File, error) {
	if strings.TrimSpace(opts.file) == "" {
		return descriptor.File{}, errors.New("-f is required")
	}
	file, err := descriptor.Load(opts.file)
	if err != nil {
		return descriptor.File{}, err
	}
	if err := file.Validate(); err != nil {
		return descriptor.File{}, err
	}
	return file, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(exitCode(err))
}
