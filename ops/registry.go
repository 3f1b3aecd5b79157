// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ops

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingKey       = errors.New("operation requires a key")
	ErrEmptyScript      = errors.New("script holds no operations")
)

// Factory builds an operation from an optional key argument.
type Factory func(key *int) (Operation, error)

// Registry maps operation names to factories. Lookups ignore case.
type Registry struct {
	factories map[string]Factory
	names     []string
}

// Default is the registry used by the package-level helpers.
var Default = NewRegistry()

// NewRegistry creates a registry with the built-in operations
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("Insert", keyed(func(k int) Operation { return Insert{Key: k} }))
	r.Register("Delete", keyed(func(k int) Operation { return Delete{Key: k} }))
	r.Register("DeleteMin", func(*int) (Operation, error) { return DeleteMin{}, nil })
	r.Register("Find", keyed(func(k int) Operation { return Find{Key: k} }))

	return r
}

func keyed(build func(int) Operation) Factory {
	return func(key *int) (Operation, error) {
		if key == nil {
			return nil, ErrMissingKey
		}
		return build(*key), nil
	}
}

// Register adds or replaces the factory for name
func (r *Registry) Register(name string, f Factory) {
	lower := strings.ToLower(name)
	if _, ok := r.factories[lower]; !ok {
		r.names = append(r.names, name)
	}
	r.factories[lower] = f
}

// Build looks up name and constructs the operation.
func (r *Registry) Build(name string, key *int) (Operation, error) {
	f, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
	op, err := f(key)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return op, nil
}

// Names lists registered operations in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
