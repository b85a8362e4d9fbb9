package domain

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EnvType identifies a deployment tier
type EnvType string

const (
	EnvProd    EnvType = "PROD"
	EnvPreprod EnvType = "PREPROD"
	EnvDev     EnvType = "DEV"
)

// EnvTypes lists the environments in iteration order.
var EnvTypes = []EnvType{EnvProd, EnvPreprod, EnvDev}

// DependencyReference is an external (non-catalogue) dependency
type DependencyReference struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Dependent is a consumer of a component
type Dependent struct {
	Name             string `json:"name"`
	IsKnownComponent bool   `json:"isKnownComponent"`
}

// ComponentDependencies holds the outgoing edges of a component
type ComponentDependencies struct {
	Components []string              `json:"components"`
	Categories []string              `json:"categories"`
	Other      []DependencyReference `json:"other"`
}

// ComponentDependencyInfo is the dependency data of one component in one environment
type ComponentDependencyInfo struct {
	Dependencies ComponentDependencies `json:"dependencies"`
	Dependents   []Dependent           `json:"dependents"`
}

// ComponentMap keeps component entries in source insertion order.
type ComponentMap = orderedmap.OrderedMap[string, ComponentDependencyInfo]

// NewComponentMap creates an empty ComponentMap
func NewComponentMap() *ComponentMap {
	return orderedmap.New[string, ComponentDependencyInfo]()
}

// EnvDependencyInfo is the dependency data of one environment
type EnvDependencyInfo struct {
	CategoryToComponent     map[string][]string `json:"categoryToComponent"`
	ComponentDependencyInfo *ComponentMap       `json:"componentDependencyInfo"`
	MissingServices         []string            `json:"missingServices"`
}

// NewEnvDependencyInfo creates an empty environment
func NewEnvDependencyInfo() EnvDependencyInfo {
	return EnvDependencyInfo{
		CategoryToComponent:     map[string][]string{},
		ComponentDependencyInfo: NewComponentMap(),
		MissingServices:         []string{},
	}
}

// AddComponent appends a component entry, replacing any entry with the same name.
func (e *EnvDependencyInfo) AddComponent(name string, info ComponentDependencyInfo) {
	if e.ComponentDependencyInfo == nil {
		e.ComponentDependencyInfo = NewComponentMap()
	}
	e.ComponentDependencyInfo.Set(name, info)
}

// EachComponent visits the environment's components in insertion order.
func (e EnvDependencyInfo) EachComponent(fn func(name string, info ComponentDependencyInfo)) {
	if e.ComponentDependencyInfo == nil {
		return
	}
	for pair := e.ComponentDependencyInfo.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// ComponentCount returns the number of components in the environment
func (e EnvDependencyInfo) ComponentCount() int {
	if e.ComponentDependencyInfo == nil {
		return 0
	}
	return e.ComponentDependencyInfo.Len()
}

// DependencyInfo is the full dependency dataset keyed by environment
type DependencyInfo map[EnvType]EnvDependencyInfo

// NewDependencyInfo returns a DependencyInfo with all three environments empty
func NewDependencyInfo() DependencyInfo {
	info := make(DependencyInfo, len(EnvTypes))
	for _, env := range EnvTypes {
		info[env] = NewEnvDependencyInfo()
	}
	return info
}

// Normalize makes sure exactly the three environment keys are present and
// that none of their collections are nil. Unknown keys are dropped.
func (d DependencyInfo) Normalize() DependencyInfo {
	out := make(DependencyInfo, len(EnvTypes))
	for _, env := range EnvTypes {
		e, ok := d[env]
		if !ok {
			out[env] = NewEnvDependencyInfo()
			continue
		}
		if e.CategoryToComponent == nil {
			e.CategoryToComponent = map[string][]string{}
		}
		if e.ComponentDependencyInfo == nil {
			e.ComponentDependencyInfo = NewComponentMap()
		}
		if e.MissingServices == nil {
			e.MissingServices = []string{}
		}
		out[env] = e
	}
	return out
}

// AggregatedDependencies is the summary of a slice of the dependency graph
type AggregatedDependencies struct {
	Categories   []string        `json:"categories"`
	Dependencies map[string]bool `json:"dependencies"`
	Dependents   map[string]bool `json:"dependents"`
}

// SnapshotStatus describes the last dependency info fetched from the catalogue
type SnapshotStatus struct {
	FetchedAt  time.Time       `json:"fetched_at"`
	Components map[EnvType]int `json:"components"`
}

// Status summarizes info as fetched at t
func (d DependencyInfo) Status(t time.Time) SnapshotStatus {
	counts := make(map[EnvType]int, len(EnvTypes))
	for _, env := range EnvTypes {
		counts[env] = d[env].ComponentCount()
	}
	return SnapshotStatus{FetchedAt: t, Components: counts}
}
