// Package catalog holds the named agents and their system prompts.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Agent names.
const (
	ReadinessAssessment    = "ai-readiness-assessment"
	LeadIntelligence       = "lead-intelligence-assistant"
	ConsultationScheduler  = "consultation-scheduler"
	ContentPersonalization = "content-personalization-agent"
	CourseRecommendation   = "course-recommendation-engine"
	BusinessConsultant     = "business-consultant"
)

//go:embed agents.yaml
var defaultYAML []byte

// Agent is a named system prompt template.
type Agent struct {
	Name        string  `yaml:"name" json:"name"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Temperature float32 `yaml:"temperature" json:"-"`
	Prompt      string  `yaml:"prompt" json:"-"`
}

type file struct {
	Preamble string  `yaml:"preamble"`
	Agents   []Agent `yaml:"agents"`
}

// Catalog is an immutable set of agents.
type Catalog struct {
	byName map[string]Agent
	order  []string
}

// Parse reads a catalog document. Every agent needs a unique name, a title
// and a prompt; the preamble is prepended to each prompt.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse agent catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]Agent, len(f.Agents))}
	for _, a := range f.Agents {
		if a.Name == "" || a.Title == "" || strings.TrimSpace(a.Prompt) == "" {
			return nil, fmt.Errorf("agent %q: name, title and prompt are required", a.Name)
		}
		if _, dup := c.byName[a.Name]; dup {
			return nil, fmt.Errorf("agent %q defined twice", a.Name)
		}
		a.Prompt = strings.TrimSpace(strings.TrimSpace(a.Prompt) + "\n\n" + strings.TrimSpace(f.Preamble))
		c.byName[a.Name] = a
		c.order = append(c.order, a.Name)
	}
	return c, nil
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the embedded catalog.
func Default() *Catalog {
	return loadDefault()
}

// Get returns the agent with the given name.
func (c *Catalog) Get(name string) (Agent, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// List returns the agents in declaration order.
func (c *Catalog) List() []Agent {
	out := make([]Agent, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Names returns the agent names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names
}

// Title returns the display title of an agent in the embedded catalog, or the
// name itself when it is unknown.
func Title(name string) string {
	if a, ok := Default().Get(name); ok {
		return a.Title
	}
	return name
}
