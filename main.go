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
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/ops"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// runScript loads path and applies it to a fresh tree.
func runScript(ctx context.Context, path string, runner *ops.Runner, progress bool) (*avl.Tree, *ops.Report, error) {
	script, err := ops.LoadScript(path)
	if err != nil {
		return nil, nil, err
	}

	if progress {
		bar := newProgressBar(len(script.Entries), "🌳 Applying "+filepath.Base(path))
		observe := runner.Observer
		runner.Observer = func(step int, e ops.Entry, res ops.Result, err error) {
			bar.Add(1)
			if observe != nil {
				observe(step, e, res, err)
			}
		}
		defer bar.Finish()
	}

	tree := avl.New()
	report, err := runner.Run(ctx, tree, script)
	return tree, report, err
}

// traceObserver logs every entry, for --verbose.
func traceObserver(step int, e ops.Entry, res ops.Result, err error) {
	if err != nil {
		log.Printf("#%d [%s] %s: %v", step+1, e.Label, e.Name, err)
		return
	}
	log.Printf("#%d [%s] %s", step+1, e.Label, res)
}

func loadConfigOrDefault() *Config {
	config, err := LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v. Using default settings.", err)
	}
	return config
}

func main() {
	asciiLogo := `
 █████╗ ██╗   ██╗██╗     ██╗  ██╗██╗████████╗
██╔══██╗██║   ██║██║     ██║ ██╔╝██║╚══██╔══╝
███████║██║   ██║██║     █████╔╝ ██║   ██║
██╔══██║╚██╗ ██╔╝██║     ██╔═██╗ ██║   ██║
██║  ██║ ╚████╔╝ ███████╗██║  ██╗██║   ██║
╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═╝   ╚═╝
Self-balancing AVL trees you can script, step through and inspect [Version: %s%s%s]

`
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	config := loadConfigOrDefault()

	// Each command binds its own flag variables; cobra writes a flag's
	// default into its variable when the flag is declared.
	var (
		outFormat    string
		outIndent    int
		outNodes     bool
		runNoColor   bool
		runCheck     bool
		runKeepGoing bool
		runProgress  bool
		runVerbose   bool
	)

	outputOpts := func(noColor bool) outputOptions {
		opts := outputOptions{Format: outFormat, Indent: outIndent, Nodes: outNodes, Color: config.Output.Color && !noColor}
		if err := opts.validate(); err != nil {
			log.Fatalf("Invalid output options: %v", err)
		}
		if !opts.Color {
			DisableColors()
		}
		return opts
	}

	var cmdRun = &cobra.Command{
		Use:   "run <script>",
		Short: "Apply a script and print the resulting tree",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run applies every operation of a JSON or YAML script to an empty tree and prints the final tree`),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := outputOpts(runNoColor)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			runner := &ops.Runner{CheckInvariants: runCheck, StopOnError: !runKeepGoing}
			if runVerbose {
				runner.Observer = traceObserver
			}

			tree, report, err := runScript(ctx, args[0], runner, runProgress)
			if err != nil && report == nil {
				log.Fatalf("Error loading script: %v", err)
			}
			if runVerbose {
				log.Println(report)
			}
			if err != nil {
				log.Fatalf("Script stopped: %v", err)
			}
			if err := writeSnapshot(os.Stdout, tree.Snapshot(), opts); err != nil {
				log.Fatalf("Error writing snapshot: %v", err)
			}
		},
	}
	cmdRun.Flags().StringVarP(&outFormat, "format", "f", config.Output.Format, "output format: json, yaml or tree")
	cmdRun.Flags().IntVar(&outIndent, "indent", config.Output.Indent, "indent width for json and yaml output")
	cmdRun.Flags().BoolVar(&outNodes, "nodes", false, "print the breadth-first node list instead of the keyed document")
	cmdRun.Flags().BoolVar(&runNoColor, "no-color", false, "disable coloured output")
	cmdRun.Flags().BoolVar(&runCheck, "check", config.Run.CheckInvariants, "validate the tree after every operation")
	cmdRun.Flags().BoolVar(&runKeepGoing, "keep-going", !config.Run.StopOnError, "continue past DeleteMin on an empty tree")
	cmdRun.Flags().BoolVar(&runProgress, "progress", config.Run.ShowProgress, "show a progress bar on stderr")
	cmdRun.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log every operation")

	var verifyKeepGoing, verifyVerbose bool

	var cmdVerify = &cobra.Command{
		Use:   "verify <script>",
		Short: "Apply a script checking every invariant after each operation",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Verify exits with a non-zero status at the first operation that leaves the tree inconsistent`),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			runner := &ops.Runner{CheckInvariants: true, StopOnError: !verifyKeepGoing}
			runner.Observer = func(step int, e ops.Entry, res ops.Result, err error) {
				if err != nil {
					fmt.Printf("%s✗%s %-4d %-12s %v\n", Error, Reset, step+1, e.Label, err)
					return
				}
				if verifyVerbose {
					fmt.Printf("%s✓%s %-4d %-12s %s\n", Green, Reset, step+1, e.Label, res)
				}
			}

			tree, report, err := runScript(ctx, args[0], runner, false)
			if err != nil && report == nil {
				log.Fatalf("Error loading script: %v", err)
			}
			fmt.Println(report)
			if err != nil {
				log.Fatalf("Verification failed: %v", err)
			}
			fmt.Printf("%s✅ tree valid%s: size %d, height %d\n", Green, Reset, tree.Size(), tree.Height())
		},
	}
	cmdVerify.Flags().BoolVar(&verifyKeepGoing, "keep-going", false, "continue past DeleteMin on an empty tree")
	cmdVerify.Flags().BoolVarP(&verifyVerbose, "verbose", "v", false, "print every operation, not just failures")

	gen := ops.Generator{
		Operations:  config.Generate.Operations,
		MaxKey:      config.Generate.MaxKey,
		InsertRatio: config.Generate.InsertRatio,
		DeleteRatio: config.Generate.DeleteRatio,
		FindRatio:   config.Generate.FindRatio,
		UniqueKeys:  config.Generate.UniqueKeys,
	}
	var genFormat, genOutput string

	var cmdGen = &cobra.Command{
		Use:   "gen",
		Short: "Generate a random script",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Gen writes a random script that never calls DeleteMin on an empty tree`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			format, err := ops.ParseFormat(genFormat)
			if err != nil {
				log.Fatalf("Invalid format: %v", err)
			}
			if !cmd.Flags().Changed("seed") {
				gen.Seed = time.Now().UnixNano()
			}

			if genOutput != "" {
				bar := newProgressBar(gen.Operations, "🎲 Generating")
				gen.Progress = func() { bar.Add(1) }
				defer bar.Finish()
			}

			script, err := gen.Generate()
			if err != nil {
				log.Fatalf("Error generating script: %v", err)
			}

			var w io.Writer = os.Stdout
			if genOutput != "" {
				f, err := os.Create(genOutput)
				if err != nil {
					log.Fatalf("Error creating %s: %v", genOutput, err)
				}
				defer f.Close()
				w = f
			}
			if err := script.Encode(w, format); err != nil {
				log.Fatalf("Error writing script: %v", err)
			}
		},
	}
	cmdGen.Flags().IntVarP(&gen.Operations, "ops", "n", gen.Operations, "number of operations")
	cmdGen.Flags().IntVar(&gen.MaxKey, "max-key", gen.MaxKey, "keys are drawn from [0, max-key)")
	cmdGen.Flags().Float64Var(&gen.InsertRatio, "insert-ratio", gen.InsertRatio, "share of Insert operations")
	cmdGen.Flags().Float64Var(&gen.DeleteRatio, "delete-ratio", gen.DeleteRatio, "share of Delete operations")
	cmdGen.Flags().Float64Var(&gen.FindRatio, "find-ratio", gen.FindRatio, "share of Find operations; the rest is DeleteMin")
	cmdGen.Flags().BoolVar(&gen.UniqueKeys, "unique", gen.UniqueKeys, "insert every key at most once")
	cmdGen.Flags().Int64Var(&gen.Seed, "seed", 0, "random seed (default: current time)")
	cmdGen.Flags().StringVarP(&genFormat, "format", "f", "json", "script format: json or yaml")
	cmdGen.Flags().StringVarP(&genOutput, "output", "o", "", "write to a file instead of stdout")

	var shellNoColor bool
	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive prompt over a live tree",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Shell reads one command per line: insert, delete, deletemin, find, print, snapshot, size, check, clear, quit`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts := outputOpts(shellNoColor)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Println("Type 'help' for commands, 'quit' to leave.")
			if err := newShell(os.Stdout, opts).run(ctx, os.Stdin); err != nil {
				log.Fatalf("Error reading input: %v", err)
			}
		},
	}
	cmdShell.Flags().BoolVar(&shellNoColor, "no-color", false, "disable coloured output")

	var stepCheck, stepNoColor bool
	var cmdStep = &cobra.Command{
		Use:   "step <script>",
		Short: "Step through a script in an interactive viewer",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Step shows the tree after each operation; move back and forth with the arrow keys`),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			script, err := ops.LoadScript(args[0])
			if err != nil {
				log.Fatalf("Error loading script: %v", err)
			}
			runner := &ops.Runner{CheckInvariants: stepCheck}
			steps := newStepper(script, runner, NewFrameCache())
			if err := runBubbleTeaApp(steps, config.Output.Color && !stepNoColor); err != nil {
				log.Fatalf("Error running viewer: %v", err)
			}
		},
	}
	cmdStep.Flags().BoolVar(&stepCheck, "check", config.Run.CheckInvariants, "validate the tree after every operation")
	cmdStep.Flags().BoolVar(&stepNoColor, "no-color", false, "disable coloured output")

	var cmdInspect = &cobra.Command{
		Use:   "inspect <script>",
		Short: "Browse the final tree of a script node by node",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Inspect applies a script and opens the resulting tree in a collapsible view`),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runner := &ops.Runner{CheckInvariants: config.Run.CheckInvariants, StopOnError: config.Run.StopOnError}
			tree, report, err := runScript(context.Background(), args[0], runner, false)
			if err != nil && report == nil {
				log.Fatalf("Error loading script: %v", err)
			}
			if err != nil && ops.Fatal(err) {
				log.Fatalf("Script left the tree inconsistent: %v", err)
			}
			if err != nil {
				log.Printf("Script stopped early: %v", err)
			}
			if err := runInspector(tree.Snapshot(), filepath.Base(args[0])); err != nil {
				log.Fatalf("Error running inspector: %v", err)
			}
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show avlkit settings and create the config file if missing",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings()
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlkit usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the avlkit CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlkit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "avlkit",
		Version: version,
		Long:    asciiLogo,
	}
	rootCmd.AddCommand(cmdRun, cmdVerify, cmdGen, cmdShell, cmdStep, cmdInspect, cmdSettings, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
