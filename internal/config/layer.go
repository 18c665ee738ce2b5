package config

import (
	"sort"

	"github.com/dshills/vtkeys/internal/config/loader"
)

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default configuration.
	SourceBuiltin Source = iota
	// SourceFile represents a configuration file.
	SourceFile
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Standard priority levels. Higher values override lower values.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// layer is one configuration source.
type layer struct {
	name     string
	source   Source
	priority int
	path     string
	data     map[string]any
}

// stack holds layers sorted by ascending priority. Layers of equal
// priority keep their insertion order, so later files override earlier
// ones.
type stack []*layer

func (s *stack) add(l *layer) {
	*s = append(*s, l)
	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].priority < (*s)[j].priority
	})
}

func (s stack) find(name string) *layer {
	for _, l := range s {
		if l.name == name {
			return l
		}
	}
	return nil
}

// merge combines all layers into one map.
func (s stack) merge() map[string]any {
	result := make(map[string]any)
	for _, l := range s {
		result = loader.DeepMerge(result, l.data)
	}
	return result
}

// which returns the highest priority layer holding path.
func (s stack) which(path string) *layer {
	for i := len(s) - 1; i >= 0; i-- {
		if _, ok := loader.GetByPath(s[i].data, path); ok {
			return s[i]
		}
	}
	return nil
}
