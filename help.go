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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **avlkit %s**

A self-balancing AVL tree over integer keys, with tools to drive it from
scripts, a shell or an interactive viewer.

Built with Go %s

# 1. Commands
* **run <script>** applies a script and prints the final tree as json, yaml or a drawing
* **verify <script>** applies a script, validating every invariant after each operation
* **gen** writes a random script (insert, delete, deletemin and find)
* **shell** opens a prompt over a live tree
* **step <script>** steps through a script one operation at a time
* **inspect <script>** browses the final tree node by node
* **settings** shows and creates ~/.avlkit.yaml

# 2. Script format
A script is JSON or YAML. Either a mapping of labels to operations, run in
document order, with an optional trailing "metadata" entry:

    {"1": {"operation": "Insert", "key": 10},
     "2": {"operation": "DeleteMin"},
     "metadata": {"numOps": 2, "maxKey": 10}}

or a plain list of operations:

    - operation: insert
      key: 4
    - operation: deletemin

# 3. Tree rules
* Duplicate keys are allowed and go to the right subtree
* Delete removes one occurrence and reports whether the key was present
* DeleteMin on an empty tree is an error; scripts stop on it unless --keep-going is set

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
