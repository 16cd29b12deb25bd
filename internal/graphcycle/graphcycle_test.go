package graphcycle

import (
	"errors"
	"reflect"
	"testing"
)

func detectOver(t *testing.T, edges map[string][]string, starts []string, missing MissingPolicy) error {
	t.Helper()
	return Detect(Config[string]{
		Exists: func(k string) bool {
			_, ok := edges[k]
			return ok
		},
		Next: func(k string) ([]string, error) {
			return edges[k], nil
		},
		Starts:  starts,
		Missing: missing,
	})
}

func TestDetectAcyclic(t *testing.T) {
	edges := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {},
	}
	if err := detectOver(t, edges, []string{"a"}, MissingPolicyError); err != nil {
		t.Fatalf("acyclic graph reported error: %v", err)
	}
}

func TestDetectReportsCycleChain(t *testing.T) {
	edges := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"b"},
	}

	err := detectOver(t, edges, []string{"a"}, MissingPolicyError)
	if err == nil {
		t.Fatal("expected cycle error")
	}

	var cycle CycleError[string]
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %T", err)
	}
	if cycle.Key != "b" {
		t.Errorf("cycle key = %q, want b", cycle.Key)
	}
	if want := []string{"b", "c", "b"}; !reflect.DeepEqual(cycle.Chain, want) {
		t.Errorf("cycle chain = %v, want %v", cycle.Chain, want)
	}
}

func TestDetectSelfReference(t *testing.T) {
	edges := map[string][]string{"a": {"a"}}

	err := detectOver(t, edges, []string{"a"}, MissingPolicyError)
	var cycle CycleError[string]
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if want := []string{"a", "a"}; !reflect.DeepEqual(cycle.Chain, want) {
		t.Errorf("cycle chain = %v, want %v", cycle.Chain, want)
	}
}

func TestDetectMissingPolicy(t *testing.T) {
	edges := map[string][]string{"a": {"ghost"}}

	if err := detectOver(t, edges, []string{"a"}, MissingPolicyIgnore); err != nil {
		t.Fatalf("ignore policy reported error: %v", err)
	}

	err := detectOver(t, edges, []string{"a"}, MissingPolicyError)
	var missing MissingError[string]
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if missing.From != "a" || missing.Key != "ghost" {
		t.Errorf("missing = %+v, want from a to ghost", missing)
	}
}

func TestDetectSharedNodeIsNotACycle(t *testing.T) {
	// Diamond: two paths reach d, none of them cyclic.
	edges := map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	}
	if err := detectOver(t, edges, []string{"a"}, MissingPolicyError); err != nil {
		t.Fatalf("diamond graph reported error: %v", err)
	}
}
