// Package ui provides terminal UI components for the dl2xx CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal
// output for device commands. Most components follow a "run once and exit"
// pattern - they render output compellingly but don't require user
// interaction. The one interactive piece is the watch display.
//
// # Architecture
//
// The UI package provides these component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Progress bar with step list showing real-time status
//   - Result: Success/failure boxes with styled information
//   - Printer: Writer-bound output helper used by single-shot commands
//   - Confirm: "I AGREE" prompt gating destructive operations
//   - Watch: Interactive live-measurement display with a humidity gauge
//
// The step components are orchestrated by Runner, which manages the
// header → progress → result flow for multi-step commands such as
// starting a recording session.
//
// # Usage Pattern
//
// Multi-step commands use this package by:
//
//  1. Creating a Runner with command metadata
//  2. Calling Run() with their operation function
//  3. The operation reports progress via a step callback
//  4. Runner handles all UI rendering automatically
//
// Example:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:      "Start Recording",
//	    Command:    "dl2xx record",
//	    Params:     map[string]string{"Sample Rate": "60 s"},
//	    TotalSteps: 3,
//	})
//
//	err := runner.Run(func(onStep ui.StepCallback) (map[string]string, error) {
//	    onStep(1, "Reading configuration", ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, "Reading configuration", ui.StepComplete, "")
//	    return details, nil
//	}, tipsForError)
//
// # Logging Integration
//
// This package expects logging to be controlled via the DL2XX_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set DL2XX_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
package ui
