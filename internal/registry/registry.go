// Package registry holds the catalog of available codemod transforms.
//
// The catalog ships as an embedded YAML manifest. Each entry describes a
// named, versioned transform; the registry preserves manifest order (the
// registration order) and offers lookup by exact name plus a
// version-descending view used for interactive selection.
package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed transforms.yaml
var manifest []byte

// Descriptor describes a single transform in the catalog.
type Descriptor struct {
	// Name uniquely identifies the transform and names its script file.
	Name string `yaml:"name"`

	// Title is the human-readable summary shown in selection prompts.
	Title string `yaml:"title"`

	// Version is the release the transform belongs to (e.g. "13.2.0").
	Version string `yaml:"version"`
}

// Label renders the descriptor the way selection prompts display it.
func (d Descriptor) Label() string {
	return fmt.Sprintf("%s (v%s) %s", d.Name, d.Version, d.Title)
}

// Registry is an immutable, ordered collection of transform descriptors.
type Registry struct {
	order  []Descriptor
	byName map[string]Descriptor
}

// Load parses the embedded manifest into a Registry.
// Returns an error if the manifest is malformed or contains duplicate names.
func Load() (*Registry, error) {
	var doc struct {
		Transforms []Descriptor `yaml:"transforms"`
	}
	if err := yaml.Unmarshal(manifest, &doc); err != nil {
		return nil, fmt.Errorf("registry: failed to parse transform manifest: %w", err)
	}
	if len(doc.Transforms) == 0 {
		return nil, fmt.Errorf("registry: transform manifest is empty")
	}

	r := &Registry{
		order:  doc.Transforms,
		byName: make(map[string]Descriptor, len(doc.Transforms)),
	}
	for _, d := range doc.Transforms {
		if d.Name == "" {
			return nil, fmt.Errorf("registry: transform with empty name in manifest")
		}
		if _, exists := r.byName[d.Name]; exists {
			return nil, fmt.Errorf("registry: duplicate transform %q in manifest", d.Name)
		}
		r.byName[d.Name] = d
	}
	return r, nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns all transform names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, d := range r.order {
		names[i] = d.Name
	}
	return names
}

// Count returns the number of registered transforms.
func (r *Registry) Count() int {
	return len(r.order)
}

// Choices returns descriptors sorted by version descending, with ties broken
// by registration order. This is the order selection prompts present.
func (r *Registry) Choices() []Descriptor {
	choices := make([]Descriptor, len(r.order))
	copy(choices, r.order)
	sort.SliceStable(choices, func(i, j int) bool {
		return compareVersions(choices[i].Version, choices[j].Version) > 0
	})
	return choices
}

// compareVersions compares two dotted version strings numerically, segment by
// segment. A version carrying a pre-release suffix (e.g. "15.0.0-canary.3")
// sorts below the same version without one. Manifest versions are not always
// canonical semver ("6.0"), so missing segments compare as zero.
func compareVersions(a, b string) int {
	aBase, aPre, _ := strings.Cut(a, "-")
	bBase, bPre, _ := strings.Cut(b, "-")

	aParts := strings.Split(aBase, ".")
	bParts := strings.Split(bBase, ".")
	for i := 0; i < len(aParts) || i < len(bParts); i++ {
		av := segment(aParts, i)
		bv := segment(bParts, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	case aPre < bPre:
		return -1
	default:
		return 1
	}
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}
