package objective

import (
	"testing"

	"github.com/amtools/amrules/internal/descriptor"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name       string
		descriptor descriptor.Descriptor
		wantKinds  []Kind
	}{
		{
			name:       "both",
			descriptor: descriptor.Descriptor{Function: "checkout", Module: "orders", SuccessRate: "0.995", Latency: &descriptor.Latency{Threshold: "0.25", Target: "0.99"}},
			wantKinds:  []Kind{KindSuccessRate, KindLatency},
		},
		{
			name:       "success-only",
			descriptor: descriptor.Descriptor{Function: "checkout", Module: "orders", SuccessRate: "0.995"},
			wantKinds:  []Kind{KindSuccessRate},
		},
		{
			name:       "latency-only",
			descriptor: descriptor.Descriptor{Function: "search", Module: "catalog", Latency: &descriptor.Latency{Threshold: "0.1", Target: "0.95"}},
			wantKinds:  []Kind{KindLatency},
		},
		{
			name:       "neither",
			descriptor: descriptor.Descriptor{Function: "noop", Module: "misc"},
			wantKinds:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			objectives := Derive(tc.descriptor)
			if len(objectives) != len(tc.wantKinds) {
				t.Fatalf("expected %d objectives, got %d", len(tc.wantKinds), len(objectives))
			}
			for i, kind := range tc.wantKinds {
				if objectives[i].Kind != kind {
					t.Fatalf("objective %d: expected kind %q, got %q", i, kind, objectives[i].Kind)
				}
			}
		})
	}
}

func TestDeriveCarriesTargets(t *testing.T) {
	d := descriptor.Descriptor{
		Function:    "checkout",
		Module:      "orders",
		SuccessRate: "0.995",
		Latency:     &descriptor.Latency{Threshold: "0.25", Target: "0.99"},
	}

	objectives := Derive(d)
	if len(objectives) != 2 {
		t.Fatalf("expected 2 objectives, got %d", len(objectives))
	}
	success, latency := objectives[0], objectives[1]
	if success.Target != "0.995" {
		t.Fatalf("expected success target 0.995, got %q", success.Target)
	}
	if success.ThresholdLabel != "" {
		t.Fatalf("expected empty threshold for success rate, got %q", success.ThresholdLabel)
	}
	if latency.Target != "0.99" {
		t.Fatalf("expected latency target 0.99, got %q", latency.Target)
	}
	if latency.ThresholdLabel != "0.25" {
		t.Fatalf("expected latency threshold 0.25, got %q", latency.ThresholdLabel)
	}
}

func TestID(t *testing.T) {
	o := Objective{Kind: KindSuccessRate, Function: "checkout", Module: "orders"}
	if got := o.ID(); got != "orders-checkout" {
		t.Fatalf("expected orders-checkout, got %q", got)
	}
}

func TestFilterLabels(t *testing.T) {
	o := Objective{Kind: KindSuccessRate, Function: "checkout", Module: "orders"}
	want := `{function="checkout",module="orders",objective="success-rate"}`
	if got := o.FilterLabels(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	o.Kind = KindLatency
	want = `{function="checkout",module="orders",objective="latency"}`
	if got := o.FilterLabels(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSuccessRateQueries(t *testing.T) {
	o := Objective{Kind: KindSuccessRate, Function: "checkout", Module: "orders", Target: "0.995"}

	wantError := `sum(rate(function_calls_count{function="checkout",module="orders",result="error"}[5m]))`
	if got := o.ErrorQuery("5m"); got != wantError {
		t.Fatalf("expected %q, got %q", wantError, got)
	}
	wantTotal := `sum(rate(function_calls_count{function="checkout",module="orders"}[5m]))`
	if got := o.TotalQuery("5m"); got != wantTotal {
		t.Fatalf("expected %q, got %q", wantTotal, got)
	}
}

func TestLatencyQueries(t *testing.T) {
	o := Objective{Kind: KindLatency, Function: "refund", Module: "orders", Target: "0.95", ThresholdLabel: "0.5"}

	wantError := `(sum(rate(function_calls_duration_bucket{function="refund",module="orders"}[1h])) - sum(rate(function_calls_duration_bucket{le="0.5",function="refund",module="orders"}[1h])))`
	if got := o.ErrorQuery("1h"); got != wantError {
		t.Fatalf("expected %q, got %q", wantError, got)
	}
	wantTotal := `sum(rate(function_calls_duration_bucket{function="refund",module="orders"}[1h]))`
	if got := o.TotalQuery("1h"); got != wantTotal {
		t.Fatalf("expected %q, got %q", wantTotal, got)
	}
}

func TestQueriesKeepIdentifiersVerbatim(t *testing.T) {
	o := Objective{Kind: KindSuccessRate, Function: `check"out`, Module: `or\ders`, Target: "0.995"}

	wantFilter := `{function="check"out",module="or\ders",objective="success-rate"}`
	if got := o.FilterLabels(); got != wantFilter {
		t.Fatalf("expected %s, got %s", wantFilter, got)
	}
	wantError := `sum(rate(function_calls_count{function="check"out",module="or\ders",result="error"}[5m]))`
	if got := o.ErrorQuery("5m"); got != wantError {
		t.Fatalf("expected %s, got %s", wantError, got)
	}
}
