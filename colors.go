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
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
)

type ColorScheme struct {
	Border      ui.Color
	BorderFocus ui.Color
	Text        ui.Color
	Balanced    ui.Color // balance factor 0
	Leaning     ui.Color // balance factor ±1
	Broken      ui.Color // anything else
}

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

var (
	currentColorScheme *ColorScheme
	detectedMode       TerminalMode

	// ANSI escapes for plain terminal output; see InitializeColors.
	Green, Info, Warning, Error, Reset = GetANSIColors()
)

// detectTerminalMode guesses a light or dark background from the environment
func detectTerminalMode() TerminalMode {
	// COLORFGBG is "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			switch parts[len(parts)-1] {
			case "0", "8", "16":
				return TerminalModeDark
			case "15", "7", "255":
				return TerminalModeLight
			}
		}
	}

	for _, name := range []string{"TERM_THEME", "THEME"} {
		theme := strings.ToLower(os.Getenv(name))
		if strings.Contains(theme, "dark") {
			return TerminalModeDark
		} else if strings.Contains(theme, "light") {
			return TerminalModeLight
		}
	}

	return TerminalModeDark
}

func createLightColorScheme() *ColorScheme {
	return &ColorScheme{
		Border:      ui.Color(8),
		BorderFocus: ui.Color(4),
		Text:        ui.ColorBlack,
		Balanced:    ui.Color(2),
		Leaning:     ui.Color(4),
		Broken:      ui.ColorRed,
	}
}

func createDarkColorScheme() *ColorScheme {
	return &ColorScheme{
		Border:      ui.Color(240),
		BorderFocus: ui.Color(14),
		Text:        ui.ColorWhite,
		Balanced:    ui.Color(2),
		Leaning:     ui.Color(14),
		Broken:      ui.Color(9),
	}
}

// InitializeColors detects the terminal mode and picks both the termui scheme
// and the ANSI escapes to match.
func InitializeColors() {
	detectedMode = detectTerminalMode()

	switch detectedMode {
	case TerminalModeLight:
		currentColorScheme = createLightColorScheme()
	default:
		currentColorScheme = createDarkColorScheme()
	}
	Green, Info, Warning, Error, Reset = GetANSIColors()
}

// DisableColors blanks the ANSI escapes, for --no-color and piped output.
func DisableColors() {
	Green, Info, Warning, Error, Reset = "", "", "", "", ""
}

func GetColorScheme() *ColorScheme {
	if currentColorScheme == nil {
		InitializeColors()
	}
	return currentColorScheme
}

// GetANSIColors returns darker escapes for light terminals and bright ones
// otherwise.
func GetANSIColors() (success, info, warning, error, reset string) {
	if detectedMode == TerminalModeLight {
		success = "\033[32m"
		info = "\033[34m"
		warning = "\033[33m"
		error = "\033[31m"
	} else {
		success = "\033[92m"
		info = "\033[96m"
		warning = "\033[93m"
		error = "\033[91m"
	}

	reset = "\033[0m"
	return
}

// balanceANSI colours a node by its balance factor.
func balanceANSI(bf int) string {
	switch bf {
	case 0:
		return Green
	case -1, 1:
		return Info
	}
	return Error
}

func balanceColor(bf int) ui.Color {
	scheme := GetColorScheme()
	switch bf {
	case 0:
		return scheme.Balanced
	case -1, 1:
		return scheme.Leaning
	}
	return scheme.Broken
}

func StyleBorder(focused bool) ui.Style {
	scheme := GetColorScheme()
	if focused {
		return ui.NewStyle(scheme.BorderFocus)
	}
	return ui.NewStyle(scheme.Border)
}

func StyleText() ui.Style {
	return ui.NewStyle(GetColorScheme().Text)
}

// StyleSelected highlights the selected row with readable contrast.
func StyleSelected() ui.Style {
	scheme := GetColorScheme()
	if detectedMode == TerminalModeLight {
		return ui.NewStyle(ui.ColorWhite, scheme.BorderFocus)
	}
	return ui.NewStyle(ui.ColorBlack, scheme.BorderFocus)
}
