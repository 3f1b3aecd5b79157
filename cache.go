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

package main

import (
	"strconv"
	"time"

	"github.com/cybrota/avlkit/avl"
	"github.com/patrickmn/go-cache"
)

const (
	// A viewer session rarely lasts longer than this
	frameCacheExpiration = 30 * time.Minute
	frameCacheCleanup    = 5 * time.Minute
)

// frame is the state of the tree after a given number of script entries.
type frame struct {
	Step     int
	Snapshot avl.Snapshot
	Result   string
	Err      error
}

// NewFrameCache creates the per-step cache used by the step viewer.
func NewFrameCache() *cache.Cache {
	return cache.New(frameCacheExpiration, frameCacheCleanup)
}

func frameKey(step int) string {
	return strconv.Itoa(step)
}

func CacheFrame(c *cache.Cache, f frame) {
	c.Set(frameKey(f.Step), f, frameCacheExpiration)
}

func GetFrame(c *cache.Cache, step int) (frame, bool) {
	val, ok := c.Get(frameKey(step))
	if !ok {
		return frame{}, false
	}
	return val.(frame), true
}
