package service

import (
	"strings"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
)

// Dependencies answers read-only questions about one DependencyInfo snapshot.
// It holds no mutable state, so a new instance can be created per request.
type Dependencies struct {
	info domain.DependencyInfo
}

// NewDependencies creates an aggregator over info
func NewDependencies(info domain.DependencyInfo) *Dependencies {
	return &Dependencies{info: info}
}

// GetDependencies is GetDependenciesForComponents for a single component
func (d *Dependencies) GetDependencies(componentName string) domain.AggregatedDependencies {
	return d.GetDependenciesForComponents([]string{componentName})
}

// GetDependenciesForComponents merges the dependency data of every named
// component across all environments. Unknown names contribute nothing.
func (d *Dependencies) GetDependenciesForComponents(componentNames []string) domain.AggregatedDependencies {
	wanted := make(map[string]struct{}, len(componentNames))
	for _, name := range componentNames {
		wanted[name] = struct{}{}
	}

	result := domain.AggregatedDependencies{
		Categories:   []string{},
		Dependencies: map[string]bool{},
		Dependents:   map[string]bool{},
	}
	seenCategories := map[string]struct{}{}

	for _, env := range domain.EnvTypes {
		d.info[env].EachComponent(func(name string, info domain.ComponentDependencyInfo) {
			if _, ok := wanted[name]; !ok {
				return
			}

			for _, category := range info.Dependencies.Categories {
				if _, seen := seenCategories[category]; seen {
					continue
				}
				seenCategories[category] = struct{}{}
				result.Categories = append(result.Categories, category)
			}

			// later entries overwrite earlier ones
			for _, component := range info.Dependencies.Components {
				result.Dependencies[component] = true
			}
			for _, other := range info.Dependencies.Other {
				if isNoise(other.Name) {
					continue
				}
				result.Dependencies[other.Name] = false
			}

			// once known, a dependent stays known
			for _, dependent := range info.Dependents {
				result.Dependents[dependent.Name] = result.Dependents[dependent.Name] || dependent.IsKnownComponent
			}
		})
	}

	return result
}

// GetAllUnknownHosts concatenates every environment's missing services.
// Names are not de-duplicated across environments.
func (d *Dependencies) GetAllUnknownHosts() []string {
	hosts := []string{}
	for _, env := range domain.EnvTypes {
		hosts = append(hosts, d.info[env].MissingServices...)
	}
	return hosts
}

// isNoise reports loopback and generic http client artifacts from scan data.
func isNoise(name string) bool {
	return strings.Contains(strings.ToLower(name), "localhost") || name == "Http"
}
