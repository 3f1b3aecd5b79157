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
	"math/rand"
	"strconv"

	"github.com/pkg/errors"
	"github.com/willf/bloom"
)

const (
	// unique key draws give up after this many bloom filter hits
	maxUniqueDraws = 32
	bloomFalseRate = 0.01
	// share of deletes aimed at a random key rather than a live one
	deleteMissRate = 0.2
)

// Generator produces random scripts. The ratios pick the share of Insert,
// Delete and Find entries; whatever is left over becomes DeleteMin.
type Generator struct {
	Operations  int
	MaxKey      int
	InsertRatio float64
	DeleteRatio float64
	FindRatio   float64
	UniqueKeys  bool
	Seed        int64

	// Progress, when set, is called once per generated entry.
	Progress func()
}

func DefaultGenerator() Generator {
	return Generator{
		Operations:  100,
		MaxKey:      1000,
		InsertRatio: 0.6,
		DeleteRatio: 0.2,
		FindRatio:   0.1,
	}
}

func (g Generator) validate() error {
	switch {
	case g.Operations <= 0:
		return errors.Errorf("operations must be positive, got %d", g.Operations)
	case g.MaxKey <= 0:
		return errors.Errorf("max key must be positive, got %d", g.MaxKey)
	case g.InsertRatio < 0 || g.DeleteRatio < 0 || g.FindRatio < 0:
		return errors.New("ratios must not be negative")
	case g.InsertRatio+g.DeleteRatio+g.FindRatio > 1:
		return errors.Errorf("ratios add up to %.2f, more than 1", g.InsertRatio+g.DeleteRatio+g.FindRatio)
	}
	return nil
}

// Generate builds the script. Deletes and DeleteMin only target keys the
// script has inserted and not yet removed, except for a share of deliberate
// misses, so DeleteMin never runs on an empty tree. With UniqueKeys set each
// key is inserted at most once; a bloom filter screens the draws, so a few
// unused keys may be passed over as false positives.
func (g Generator) Generate() (*Script, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(g.Seed))
	var seen *bloom.BloomFilter
	if g.UniqueKeys {
		seen = bloom.NewWithEstimates(uint(g.Operations), bloomFalseRate)
	}

	s := &Script{
		Entries: make([]Entry, 0, g.Operations),
		Metadata: map[string]interface{}{
			"numOps": g.Operations,
			"maxKey": g.MaxKey,
			"seed":   g.Seed,
		},
	}
	var live []int

	add := func(op Operation, key *int) {
		s.Entries = append(s.Entries, Entry{
			Label: strconv.Itoa(len(s.Entries) + 1),
			Name:  op.Name(),
			Key:   key,
			Op:    op,
		})
		if g.Progress != nil {
			g.Progress()
		}
	}

	drawKey := func() (int, bool) {
		for i := 0; i < maxUniqueDraws; i++ {
			k := rng.Intn(g.MaxKey)
			if seen == nil {
				return k, true
			}
			id := strconv.Itoa(k)
			if !seen.TestString(id) {
				seen.AddString(id)
				return k, true
			}
		}
		return 0, false
	}

	for len(s.Entries) < g.Operations {
		roll := rng.Float64()
		switch {
		case roll < g.InsertRatio || len(live) == 0 && roll >= g.InsertRatio+g.DeleteRatio+g.FindRatio:
			k, ok := drawKey()
			if !ok {
				k = rng.Intn(g.MaxKey)
				add(Find{Key: k}, &k)
				continue
			}
			live = append(live, k)
			add(Insert{Key: k}, &k)

		case roll < g.InsertRatio+g.DeleteRatio:
			var k int
			if len(live) == 0 || rng.Float64() < deleteMissRate {
				k = rng.Intn(g.MaxKey)
			} else {
				i := rng.Intn(len(live))
				k = live[i]
			}
			live = removeValue(live, k)
			add(Delete{Key: k}, &k)

		case roll < g.InsertRatio+g.DeleteRatio+g.FindRatio:
			k := rng.Intn(g.MaxKey)
			if len(live) > 0 && rng.Intn(2) == 0 {
				k = live[rng.Intn(len(live))]
			}
			add(Find{Key: k}, &k)

		default:
			lo := 0
			for i := range live {
				if live[i] < live[lo] {
					lo = i
				}
			}
			live = append(live[:lo], live[lo+1:]...)
			add(DeleteMin{}, nil)
		}
	}
	return s, nil
}

// removeValue drops one occurrence of v, if any.
func removeValue(keys []int, v int) []int {
	for i, k := range keys {
		if k == v {
			keys[i] = keys[len(keys)-1]
			return keys[:len(keys)-1]
		}
	}
	return keys
}
