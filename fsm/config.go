package fsm

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative YAML form of a machine definition. It is the
// serializable twin of the Builder: states and transitions by name, with
// mutations referred to by registered name since code cannot live in YAML.
type Definition struct {
	Name         string          `json:"name"         yaml:"name"`
	InitialState string          `json:"initialState" yaml:"initialState"`
	States       []string        `json:"states"       yaml:"states"`
	Transitions  []TransitionDef `json:"transitions"  yaml:"transitions"`
}

// TransitionDef defines one transition of a Definition. Mutation names a
// mutation registered in a MutationRegistry and may be empty for transitions
// with no data effect.
type TransitionDef struct {
	From     string `json:"from"     yaml:"from"`
	Command  string `json:"command"  yaml:"command"`
	To       string `json:"to"       yaml:"to"`
	Mutation string `json:"mutation" yaml:"mutation"`
}

// MutationRegistry maps mutation names used in definitions to mutation
// functions. Applications register their mutations before compiling a
// Definition that refers to them.
type MutationRegistry[D any] struct {
	mutations map[string]Mutation[D]
}

// NewMutationRegistry creates an empty mutation registry.
func NewMutationRegistry[D any]() *MutationRegistry[D] {
	return &MutationRegistry[D]{
		mutations: make(map[string]Mutation[D]),
	}
}

// Register registers a mutation under the given name.
func (r *MutationRegistry[D]) Register(name string, mutation Mutation[D]) error {
	if name == "" {
		return ErrMutationNameRequired
	}

	if _, exists := r.mutations[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMutation, name)
	}

	r.mutations[name] = mutation

	return nil
}

// Lookup resolves a registered mutation by name.
func (r *MutationRegistry[D]) Lookup(name string) (Mutation[D], bool) {
	mutation, ok := r.mutations[name]

	return mutation, ok
}

// LoadDefinition loads a machine definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %q: %w", path, err)
	}

	return ParseDefinition(data)
}

// LoadDefinitionFromFS loads a machine definition from a filesystem.
// This is a convenience function for loading from embed.FS.
func LoadDefinitionFromFS(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition from FS: %w", err)
	}

	return ParseDefinition(data)
}

// ParseDefinition parses a machine definition from YAML bytes. Structural
// validation happens when the definition is compiled.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition

	err := yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &def, nil
}

// FromDefinition compiles a definition into a table, resolving mutation
// names against the given registry. A nil registry is valid for definitions
// that declare no mutations.
func FromDefinition[D any](def *Definition, registry *MutationRegistry[D]) (*Table[D], error) {
	builder := NewBuilder[D](def.Name).
		WithInitialState(def.InitialState).
		AddStates(def.States...)

	for _, td := range def.Transitions {
		var mutate Mutation[D]

		if td.Mutation != "" {
			if registry == nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownMutation, td.Mutation)
			}

			var ok bool

			mutate, ok = registry.Lookup(td.Mutation)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownMutation, td.Mutation)
			}
		}

		builder.Transition(td.From, td.Command, td.To, mutate)
	}

	return builder.Build()
}
