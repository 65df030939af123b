package jenkins

import (
	"strings"
	"time"
)

// Suggestion is one entry of the /search/suggest response
type Suggestion struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Icon string `json:"icon,omitempty"`
	Type string `json:"type,omitempty"`
}

// SearchResult represents the /search/suggest response
type SearchResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// BuildRef is a reference to a build as embedded in job JSON
type BuildRef struct {
	Class       string    `json:"_class,omitempty"`
	Number      int       `json:"number"`
	URL         string    `json:"url"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	Result      string    `json:"result,omitempty"`
	Building    bool      `json:"building,omitempty"`
	Timestamp   int64     `json:"timestamp,omitempty"`
	LastBuild   *BuildRef `json:"lastBuild,omitempty"`
}

// Time returns the build start time, or the zero time if unknown
func (b *BuildRef) Time() time.Time {
	if b.Timestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(b.Timestamp)
}

// JobBuilds is the subset of a job's JSON used to list builds
type JobBuilds struct {
	Name   string     `json:"name,omitempty"`
	URL    string     `json:"url,omitempty"`
	Builds []BuildRef `json:"builds"`
}

// ProjectRef references an upstream or downstream project
type ProjectRef struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// HealthReport is a job health entry
type HealthReport struct {
	Description string `json:"description"`
	Score       int    `json:"score"`
	IconURL     string `json:"iconUrl,omitempty"`
}

// ParameterValue is a default parameter value
type ParameterValue struct {
	Name  string `json:"name,omitempty"`
	Value any    `json:"value"`
}

// ParameterDefinition describes one build parameter
type ParameterDefinition struct {
	Name                  string          `json:"name"`
	Type                  string          `json:"type,omitempty"`
	Description           string          `json:"description,omitempty"`
	DefaultParameterValue *ParameterValue `json:"defaultParameterValue,omitempty"`
}

// ParametersHolder is an action or property entry that may carry parameter
// definitions
type ParametersHolder struct {
	Class                string                `json:"_class,omitempty"`
	ParameterDefinitions []ParameterDefinition `json:"parameterDefinitions,omitempty"`
}

// IsParametersDefinition reports whether the entry is a
// ParametersDefinitionProperty
func (p *ParametersHolder) IsParametersDefinition() bool {
	return strings.Contains(p.Class, "ParametersDefinitionProperty")
}

// JobInfo is the job JSON returned with depth=1
type JobInfo struct {
	Class               string             `json:"_class,omitempty"`
	Name                string             `json:"name"`
	FullName            string             `json:"fullName,omitempty"`
	URL                 string             `json:"url"`
	Description         string             `json:"description,omitempty"`
	Color               string             `json:"color,omitempty"`
	Buildable           *bool              `json:"buildable,omitempty"`
	LastBuild           *BuildRef          `json:"lastBuild,omitempty"`
	LastSuccessfulBuild *BuildRef          `json:"lastSuccessfulBuild,omitempty"`
	LastFailedBuild     *BuildRef          `json:"lastFailedBuild,omitempty"`
	Builds              []BuildRef         `json:"builds,omitempty"`
	Property            []ParametersHolder `json:"property,omitempty"`
	Actions             []ParametersHolder `json:"actions,omitempty"`
	DownstreamProjects  []ProjectRef       `json:"downstreamProjects,omitempty"`
	UpstreamProjects    []ProjectRef       `json:"upstreamProjects,omitempty"`
	HealthReport        []HealthReport     `json:"healthReport,omitempty"`
}

// ParameterDefinitions collects parameter definitions from both properties
// and actions. Depending on the Jenkins version they are exposed in one or
// the other.
func (j *JobInfo) ParameterDefinitions() []ParameterDefinition {
	var defs []ParameterDefinition
	seen := make(map[string]bool)
	for _, group := range [][]ParametersHolder{j.Property, j.Actions} {
		for _, holder := range group {
			if !holder.IsParametersDefinition() {
				continue
			}
			for _, def := range holder.ParameterDefinitions {
				if seen[def.Name] {
					continue
				}
				seen[def.Name] = true
				defs = append(defs, def)
			}
		}
	}
	return defs
}

// WhoAmI is the /whoAmI/api/json response
type WhoAmI struct {
	Name          string   `json:"name"`
	Anonymous     bool     `json:"anonymous"`
	Authenticated bool     `json:"authenticated"`
	Authorities   []string `json:"authorities,omitempty"`
}
