package config

import (
	"reflect"
	"testing"
)

func TestDeepMerge(t *testing.T) {
	scenarios := []struct {
		Name   string
		Dst    map[string]any
		Src    map[string]any
		Expect map[string]any
	}{
		{
			Name:   "merging into an empty map copies the source",
			Dst:    map[string]any{},
			Src:    map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a"}},
			Expect: map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a"}},
		},
		{
			Name:   "merging a second region keeps the first one",
			Dst:    map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a"}},
			Src:    map[string]any{"vpc": map[string]any{"us-west-2": "vpc-b"}},
			Expect: map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a", "us-west-2": "vpc-b"}},
		},
		{
			Name:   "sibling keys of the merged subtree are preserved",
			Dst:    map[string]any{"id": "111111111111", "vpc": map[string]any{"eu-west-1": "vpc-a"}},
			Src:    map[string]any{"vpc": map[string]any{"us-west-2": "vpc-b"}},
			Expect: map[string]any{"id": "111111111111", "vpc": map[string]any{"eu-west-1": "vpc-a", "us-west-2": "vpc-b"}},
		},
		{
			Name:   "a scalar in the source replaces the destination value",
			Dst:    map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a"}},
			Src:    map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-c"}},
			Expect: map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-c"}},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result := DeepMerge(scenario.Dst, scenario.Src)
			if !reflect.DeepEqual(result, scenario.Expect) {
				t.Errorf("Expected %v, got %v", scenario.Expect, result)
			}
		})
	}
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	dst := map[string]any{"vpc": map[string]any{"eu-west-1": "vpc-a"}}
	src := map[string]any{"vpc": map[string]any{"us-west-2": "vpc-b"}}

	DeepMerge(dst, src)

	if len(dst["vpc"].(map[string]any)) != 1 {
		t.Errorf("DeepMerge mutated its destination argument: %v", dst)
	}
	if len(src["vpc"].(map[string]any)) != 1 {
		t.Errorf("DeepMerge mutated its source argument: %v", src)
	}
}

func TestDeepCopyIsIndependent(t *testing.T) {
	original := Document{
		"accounts": map[string]any{
			"dev": map[string]any{"id": "111111111111"},
		},
		"regions": []any{"eu-west-1"},
	}

	copied := original.DeepCopy()
	copied["accounts"].(map[string]any)["dev"].(map[string]any)["id"] = "tampered"
	copied["regions"].([]any)[0] = "tampered"

	if id, _ := original.StringAt("accounts", "dev", "id"); id != "111111111111" {
		t.Errorf("mutating the copy changed the original document: %v", original)
	}
	if original["regions"].([]any)[0] != "eu-west-1" {
		t.Errorf("mutating a copied slice changed the original document: %v", original)
	}
}
