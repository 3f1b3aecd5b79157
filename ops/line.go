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
	"strconv"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

// SplitLine tokenizes a shell line, honouring quotes.
func SplitLine(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse line %q", line)
	}
	return args, nil
}

// ParseLine builds an entry from one line such as "insert 5" or "deletemin".
func (reg *Registry) ParseLine(line string) (Entry, error) {
	args, err := SplitLine(line)
	if err != nil {
		return Entry{}, err
	}
	return reg.ParseArgs(args)
}

// ParseArgs builds an entry from an already tokenized command.
func (reg *Registry) ParseArgs(args []string) (Entry, error) {
	if len(args) == 0 {
		return Entry{}, errors.New("no operation given")
	}
	if len(args) > 2 {
		return Entry{}, errors.Errorf("too many arguments for %s: %v", args[0], args[1:])
	}

	var key *int
	if len(args) == 2 {
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return Entry{}, errors.Wrapf(err, "key for %s", args[0])
		}
		key = &k
	}

	op, err := reg.Build(args[0], key)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Label: args[0], Name: op.Name(), Key: key, Op: op}, nil
}
