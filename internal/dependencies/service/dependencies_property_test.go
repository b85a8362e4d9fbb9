package service

import (
	"reflect"
	"strings"
	"testing"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propComponents = []string{"A", "B", "C", "D"}
	propOthers     = []string{"svc-x", "localhost:3000", "Http", "A", "B"}
)

// buildPropertyInfo decodes each seed into one dependency edge and one dependent.
func buildPropertyInfo(seeds []int) domain.DependencyInfo {
	info := domain.NewDependencyInfo()
	for _, x := range seeds {
		env := domain.EnvTypes[x%3]
		name := propComponents[(x/3)%4]
		target := propOthers[(x/12)%5]
		dependent := domain.Dependent{
			Name:             propComponents[(x/60)%4],
			IsKnownComponent: (x/240)%2 == 1,
		}

		e := info[env]
		entry, _ := e.ComponentDependencyInfo.Get(name)
		if (x/480)%2 == 1 {
			entry.Dependencies.Components = append(entry.Dependencies.Components, target)
		} else {
			entry.Dependencies.Other = append(entry.Dependencies.Other, domain.DependencyReference{Name: target, Type: "http"})
		}
		entry.Dependencies.Categories = append(entry.Dependencies.Categories, "cat-"+target)
		entry.Dependents = append(entry.Dependents, dependent)
		e.AddComponent(name, entry)
	}
	return info
}

func pickNames(idx []int) []string {
	names := make([]string, 0, len(idx))
	for _, i := range idx {
		names = append(names, propComponents[i])
	}
	return names
}

func TestDependenciesProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	seedsGen := gen.SliceOf(gen.IntRange(0, 959))
	namesGen := gen.SliceOf(gen.IntRange(0, 3))

	properties.Property("aggregation is deterministic", prop.ForAll(
		func(seeds []int, idx []int) bool {
			deps := NewDependencies(buildPropertyInfo(seeds))
			names := pickNames(idx)
			return reflect.DeepEqual(deps.GetDependenciesForComponents(names), deps.GetDependenciesForComponents(names))
		},
		seedsGen, namesGen,
	))

	properties.Property("single component matches one-element list", prop.ForAll(
		func(seeds []int, i int) bool {
			deps := NewDependencies(buildPropertyInfo(seeds))
			name := propComponents[i]
			return reflect.DeepEqual(deps.GetDependencies(name), deps.GetDependenciesForComponents([]string{name}))
		},
		seedsGen, gen.IntRange(0, 3),
	))

	properties.Property("noise never appears in dependencies", prop.ForAll(
		func(seeds []int, idx []int) bool {
			result := NewDependencies(buildPropertyInfo(seeds)).GetDependenciesForComponents(pickNames(idx))
			for name, known := range result.Dependencies {
				if !known && (strings.Contains(strings.ToLower(name), "localhost") || name == "Http") {
					return false
				}
			}
			return true
		},
		seedsGen, namesGen,
	))

	properties.Property("categories have no repeats", prop.ForAll(
		func(seeds []int, idx []int) bool {
			result := NewDependencies(buildPropertyInfo(seeds)).GetDependenciesForComponents(pickNames(idx))
			seen := map[string]bool{}
			for _, c := range result.Categories {
				if seen[c] {
					return false
				}
				seen[c] = true
			}
			return true
		},
		seedsGen, namesGen,
	))

	properties.Property("a dependent known anywhere stays known", prop.ForAll(
		func(seeds []int, idx []int) bool {
			info := buildPropertyInfo(seeds)
			names := pickNames(idx)
			wanted := map[string]bool{}
			for _, n := range names {
				wanted[n] = true
			}

			expected := map[string]bool{}
			for _, env := range domain.EnvTypes {
				info[env].EachComponent(func(name string, entry domain.ComponentDependencyInfo) {
					if !wanted[name] {
						return
					}
					for _, d := range entry.Dependents {
						expected[d.Name] = expected[d.Name] || d.IsKnownComponent
					}
				})
			}

			result := NewDependencies(info).GetDependenciesForComponents(names)
			return reflect.DeepEqual(expected, result.Dependents)
		},
		seedsGen, namesGen,
	))

	properties.TestingRun(t)
}
