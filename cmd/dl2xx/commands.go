package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmalesinski/dl2xx/internal/config"
	"github.com/tmalesinski/dl2xx/internal/datalogger"
	"github.com/tmalesinski/dl2xx/internal/logging"
	"github.com/tmalesinski/dl2xx/internal/protocol"
	"github.com/tmalesinski/dl2xx/internal/transport"
	"github.com/tmalesinski/dl2xx/internal/ui"
)

// Command flags
var (
	outputFormat   string
	responseWait   time.Duration
	sampleRate     uint16
	ledInterval    uint8
	startCondition string
	skipConfirm    bool
	dumpOutput     string
	watchInterval  time.Duration
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (detailed, compact, json)")
	rootCmd.PersistentFlags().DurationVar(&responseWait, "timeout", 0, "Response timeout per report (e.g. 500ms, 2s)")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

// openDevice opens the logger with the effective timeout. The --timeout flag
// wins; otherwise the registry preference applies; otherwise the built-in
// default.
func openDevice() (*datalogger.Device, error) {
	timeout := responseWait
	if timeout <= 0 {
		if reg, err := config.LoadRegistry(); err == nil && reg.Preferences != nil &&
			reg.Preferences.TimeoutSeconds > 0 {
			timeout = time.Duration(reg.Preferences.TimeoutSeconds) * time.Second
		} else {
			timeout = transport.DefaultTimeout
		}
	}
	return datalogger.Open(datalogger.WithTimeout(timeout))
}

// effectiveFormat resolves the output format from the flag or the registry
// preference.
func effectiveFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if reg, err := config.LoadRegistry(); err == nil && reg.Preferences != nil &&
		reg.Preferences.DefaultFormat != "" {
		return reg.Preferences.DefaultFormat
	}
	return config.DefaultFormat
}

// rememberDevice records a successful connection in the user registry.
// Registry failures never fail the command.
func rememberDevice(serial, firmware string) {
	reg, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("registry unavailable: " + err.Error())
		return
	}
	reg.UpdateDeviceLastSeen(serial, firmware)
	if err := reg.Save(); err != nil {
		logging.Warn("registry save failed: " + err.Error())
	}
}

// printJSON renders any value as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// statusCmd queries device identification and the device clock
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device identification and clock",
	Long: `Query the logger for its device type, firmware version, serial number
and current device clock.

This is also the cheapest way to resynchronize the device after an
aborted dump or a protocol error.`,
	Example: `  # Human-readable status
  dl2xx status

  # JSON output for scripting
  dl2xx status --format json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	status, err := dev.Status()
	if err != nil {
		return err
	}
	rememberDevice(status.Serial, status.Firmware)

	p := ui.NewPrinter(nil)
	switch effectiveFormat() {
	case "compact":
		p.Print(status.FormatCompact())
	case "json":
		return printJSON(status)
	default:
		p.Print(status.FormatDetailed())
	}
	return nil
}

// measureCmd reads one live sample
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Read one live temperature/humidity sample",
	Long: `Read the current temperature and relative humidity from the logger's
sensor. The sample is measured on demand and is not stored on the device.`,
	Example: `  # One reading
  dl2xx measure

  # Machine-readable
  dl2xx measure --format json`,
	RunE: runMeasure,
}

func runMeasure(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	m, err := dev.Measure()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(nil)
	switch effectiveFormat() {
	case "compact":
		p.Print(m.FormatCompact())
	case "json":
		return printJSON(m)
	default:
		p.Print(m.FormatDetailed())
	}
	return nil
}

// configCmd shows the device configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the logger configuration",
	Long: `Display the logger's current configuration: sample rate, LED flash
interval, start condition, stored sample count and device clock.

Use 'dl2xx config set' to change settings.`,
	Example: `  # Show configuration
  dl2xx config

  # Change the sample rate to one minute
  dl2xx config set --sample-rate 60`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	cfg, err := dev.ReadConfig()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(nil)
	switch effectiveFormat() {
	case "compact":
		p.Print(cfg.FormatCompact())
	case "json":
		return printJSON(cfg)
	default:
		p.Print(cfg.FormatDetailed())
	}
	return nil
}

// configSetCmd applies a partial configuration update
var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change logger settings",
	Long: `Apply a partial configuration update. Only the settings named by flags
are changed; everything else keeps its current device value.

Changing settings does NOT erase stored samples and does not restart the
recording session; use 'dl2xx record' for that.`,
	Example: `  # Sample every five minutes
  dl2xx config set --sample-rate 300

  # Flash the LED every 10 seconds and record in a circular buffer
  dl2xx config set --led-interval 10 --start-condition circular`,
	RunE: runConfigSet,
}

func init() {
	configSetCmd.Flags().Uint16Var(&sampleRate, "sample-rate", 0, "Sampling interval in seconds")
	configSetCmd.Flags().Uint8Var(&ledInterval, "led-interval", 0, "LED flash interval in seconds")
	configSetCmd.Flags().StringVar(&startCondition, "start-condition", "", "Start condition (circular, scheduled)")
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configNicknameCmd)
}

// buildUpdate assembles a ConfigUpdate from the set/record flags.
func buildUpdate(cmd *cobra.Command) (*datalogger.ConfigUpdate, error) {
	update := &datalogger.ConfigUpdate{}
	if cmd.Flags().Changed("sample-rate") {
		if sampleRate == 0 {
			return nil, fmt.Errorf("sample rate must be at least 1 second")
		}
		v := sampleRate
		update.SampleRate = &v
	}
	if cmd.Flags().Changed("led-interval") {
		v := ledInterval
		update.LEDInterval = &v
	}
	if startCondition != "" {
		sc, err := protocol.ParseStartConditionName(startCondition)
		if err != nil {
			return nil, err
		}
		update.StartCondition = &sc
	}
	return update, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	update, err := buildUpdate(cmd)
	if err != nil {
		return err
	}
	if update.IsEmpty() {
		return fmt.Errorf("no changes specified (use --sample-rate, --led-interval or --start-condition)")
	}

	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	p := ui.NewPrinter(nil)
	p.Print(update.FormatChanges())
	p.Newline()

	cfg, err := dev.UpdateConfig(update)
	if err != nil {
		return err
	}

	p.PrintSuccess("Configuration updated", map[string]string{
		"Sample rate":    fmt.Sprintf("%d s", cfg.SampleRate),
		"LED interval":   fmt.Sprintf("%d s", cfg.LEDInterval),
		"Start":          cfg.StartCondition.String(),
		"Stored samples": fmt.Sprintf("%d", cfg.RecordCount),
		"Clock":          cfg.Clock.String(),
	})
	return nil
}

// configNicknameCmd assigns a registry nickname to a logger
var configNicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Set a nickname for a logger",
	Long: `Assign a user-friendly nickname to a logger, keyed by its serial number.

The nickname lives in the local user registry, not on the device, and is
shown by 'dl2xx list'. Pass an empty name to clear it.`,
	Example: `  # Name the logger after its location
  dl2xx config nickname DL_210T123456789 greenhouse

  # Clear the nickname again
  dl2xx config nickname DL_210T123456789 ""`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigNickname,
}

func runConfigNickname(cmd *cobra.Command, args []string) error {
	serial, nickname := args[0], args[1]

	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	reg.SetDeviceNickname(serial, nickname)
	if err := reg.Save(); err != nil {
		return err
	}

	if nickname == "" {
		fmt.Printf("✓ Cleared nickname for %s\n", serial)
	} else {
		fmt.Printf("✓ %s is now %q\n", serial, nickname)
	}
	return nil
}

// recordCmd starts a new recording session
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Start a new recording session (ERASES stored samples)",
	Long: `Start a new recording session on the logger.

The device clock is synchronized to this computer, the configuration
(optionally changed by the same flags as 'config set') is written, and
the start command is issued. Starting a session ERASES ALL SAMPLES
currently stored on the device; dump them first if you want to keep them.

An interactive confirmation is required unless --yes is given.`,
	Example: `  # Start with current settings (prompts for confirmation)
  dl2xx record

  # Sample every minute, skip the prompt
  dl2xx record --sample-rate 60 --yes`,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().Uint16Var(&sampleRate, "sample-rate", 0, "Sampling interval in seconds")
	recordCmd.Flags().Uint8Var(&ledInterval, "led-interval", 0, "LED flash interval in seconds")
	recordCmd.Flags().StringVar(&startCondition, "start-condition", "", "Start condition (circular, scheduled)")
	recordCmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip the interactive confirmation")
}

func runRecord(cmd *cobra.Command, args []string) error {
	update, err := buildUpdate(cmd)
	if err != nil {
		return err
	}

	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	// Read the current state first so the confirmation can say how much
	// data is about to be erased.
	current, err := dev.ReadConfig()
	if err != nil {
		return err
	}

	if !skipConfirm {
		if !ui.RecordStartConfirmation(current.RecordCount) {
			return fmt.Errorf("cancelled")
		}
	}

	params := map[string]string{
		"Stored samples": fmt.Sprintf("%d (will be erased)", current.RecordCount),
	}
	if update.SampleRate != nil {
		params["Sample rate"] = fmt.Sprintf("%d s", *update.SampleRate)
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:      "Start Recording",
		Command:    "dl2xx record",
		Params:     params,
		TotalSteps: 3,
		StepNames: []string{
			"Reading current configuration",
			"Writing configuration and clock",
			"Issuing start command",
		},
	})

	var written *datalogger.Configuration
	return runner.Run(func(onStep ui.StepCallback) (map[string]string, error) {
		// The facade runs the same read-merge-write-start sequence; the
		// steps here mirror it for the display.
		onStep(1, "", ui.StepRunning, "")
		onStep(1, "", ui.StepComplete, fmt.Sprintf("%d stored sample(s)", current.RecordCount))

		onStep(2, "", ui.StepRunning, "")
		cfg, err := dev.StartRecording(update)
		if err != nil {
			if isStartStepFailure(err) {
				onStep(2, "", ui.StepComplete, "")
				onStep(3, "", ui.StepFailed, "")
			} else {
				onStep(2, "", ui.StepFailed, "")
			}
			return nil, err
		}
		written = cfg
		onStep(2, "", ui.StepComplete, "clock synchronized")
		onStep(3, "", ui.StepRunning, "")
		onStep(3, "", ui.StepComplete, "")

		return map[string]string{
			"Sample rate": fmt.Sprintf("%d s", written.SampleRate),
			"Start":       written.StartCondition.String(),
			"Clock":       written.Clock.String(),
		}, nil
	}, func(err error) []string {
		return []string{
			"Check the USB connection and retry",
			"Run 'dl2xx status' to resynchronize the device",
			"Run with DL2XX_LOG_LEVEL=debug for a report trace",
		}
	})
}

// isStartStepFailure reports whether a record-start error happened at the
// final start command rather than during configuration.
func isStartStepFailure(err error) bool {
	devErr, ok := err.(*protocol.DeviceError)
	return ok && devErr.Op == "record-start: issue start"
}

// dumpCmd streams stored samples as CSV
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump stored samples as CSV",
	Long: `Stream every sample stored on the logger as CSV, oldest first.

Output goes to stdout by default, so it can be piped; use --output to
write a file instead. The CSV columns are timestamp, temperature in
degrees Celsius and relative humidity in percent.

Dumping does not modify the device; samples stay on the logger until a
new recording session erases them.`,
	Example: `  # Dump to stdout
  dl2xx dump

  # Write a file
  dl2xx dump --output greenhouse.csv

  # Pipe into other tools
  dl2xx dump | tail -n 10`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "Write CSV to a file instead of stdout")
}

func runDump(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	out := os.Stdout
	if dumpOutput != "" {
		f, err := os.Create(dumpOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
		// Stdout is free when writing to a file; large stores take a
		// while at five records per report.
		ui.PrintPleaseWait("Dumping stored samples", "oldest first")
	}

	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintln(w, datalogger.CSVHeader); err != nil {
		return err
	}

	n, err := dev.Dump(func(e datalogger.RecordEntry) error {
		_, werr := fmt.Fprintln(w, e.CSVLine())
		return werr
	})
	if err != nil {
		// Flush what was emitted before the failure.
		_ = w.Flush()
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	switch {
	case n == 0:
		// Keep stdout clean for pipes; the warning goes to stderr.
		ui.NewPrinter(os.Stderr).PrintWarning("No stored samples", map[string]string{
			"Hint": "start a recording session with 'dl2xx record'",
		})
	case dumpOutput != "":
		fmt.Printf("✓ Wrote %d sample(s) to %s\n", n, dumpOutput)
	default:
		fmt.Fprintf(os.Stderr, "✓ Dumped %d sample(s)\n", n)
	}

	if reg, rerr := config.LoadRegistry(); rerr == nil {
		if status, serr := dev.Status(); serr == nil {
			reg.UpdateDeviceLastDump(status.Serial)
			if err := reg.Save(); err != nil {
				logging.Warn("registry save failed: " + err.Error())
			}
		}
	}
	return nil
}

// listCmd enumerates connected loggers
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected data loggers",
	Long: `Enumerate DL-210TH loggers connected over USB without opening them.

Nicknames from the user registry (set via 'dl2xx config nickname') are
shown next to the serial numbers.`,
	Example: `  dl2xx list`,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	devices, err := transport.Enumerate()
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No data loggers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check the USB cable and that the logger is plugged in")
		fmt.Println("  - On Linux, verify udev permissions for vid 2047 pid 0301")
		return nil
	}

	reg, _ := config.LoadRegistry()

	fmt.Printf("Found %d logger(s):\n\n", len(devices))
	for i, d := range devices {
		name := d.Serial
		if reg != nil {
			name = reg.DisplayName(d.Serial)
		}
		fmt.Printf("%d. %s\n", i+1, name)
		fmt.Printf("   Serial:  %s\n", d.Serial)
		if d.Product != "" {
			fmt.Printf("   Product: %s\n", d.Product)
		}
		fmt.Printf("   Path:    %s\n", d.Path)
		fmt.Println()
	}
	return nil
}

// watchCmd shows a live measurement display
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live measurements",
	Long: `Show a live temperature/humidity display, polling the logger at a
fixed interval. Press q to quit.

Watching reads live samples only; it does not touch the recording
session or the stored data.`,
	Example: `  # Poll every 2 seconds (default)
  dl2xx watch

  # Poll every 10 seconds
  dl2xx watch --interval 10s`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Polling interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	// Name the display after the device.
	title := "DL-210TH live measurement"
	if status, err := dev.Status(); err == nil {
		title = fmt.Sprintf("%s %s", status.DeviceType, status.Serial)
		rememberDevice(status.Serial, status.Firmware)
	}

	sampler := func() (ui.Reading, error) {
		m, err := dev.Measure()
		if err != nil {
			return ui.Reading{}, err
		}
		return ui.Reading{
			Temperature: m.Temperature.String(),
			Humidity:    m.Humidity.String(),
			HumidityPct: m.Humidity.Float64() / 100,
			TempC:       m.Temperature.Float64(),
		}, nil
	}

	return ui.RunWatch(title, sampler, watchInterval)
}
