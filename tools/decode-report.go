//go:build ignore

// Decode-report is a development tool for inspecting raw HID reports
// captured from a DL-210TH logger (e.g. via usbmon or hidraw sniffing).
//
// It takes one or more hex-encoded 64-byte reports on the command line or
// one per line on stdin, validates the framing and pretty-prints the body.
//
// Usage:
//
//	go run tools/decode-report.go 3f3c30444c2d3231305448...
//	cat capture.hex | go run tools/decode-report.go
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/tmalesinski/dl2xx/internal/protocol"
)

func main() {
	var inputs []string
	if len(os.Args) > 1 {
		inputs = os.Args[1:]
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && !strings.HasPrefix(line, "#") {
				inputs = append(inputs, line)
			}
		}
	}

	if len(inputs) == 0 {
		fmt.Println("Usage: decode-report <hex-report> [<hex-report>...]")
		fmt.Println("       cat capture.hex | decode-report")
		os.Exit(1)
	}

	failures := 0
	for i, input := range inputs {
		fmt.Printf("=== Report %d ===\n", i+1)
		if err := decodeOne(input); err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failures++
		}
		fmt.Println()
	}

	if failures > 0 {
		fmt.Printf("%d of %d report(s) failed to decode\n", failures, len(inputs))
		os.Exit(1)
	}
}

func decodeOne(input string) error {
	raw, err := hex.DecodeString(strings.ReplaceAll(input, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	body, err := protocol.DecodeResponse(raw)
	if err != nil {
		return err
	}

	fmt.Printf("  body length: %d\n", len(body))
	fmt.Printf("  body hex:    %s\n", hex.EncodeToString(body))

	// Try each known interpretation and print whichever fits.
	if fields, err := protocol.ExpectEcho(body, protocol.CmdStatus); err == nil {
		if info, err := protocol.DecodeStatus(fields); err == nil {
			fmt.Printf("  status: type=%q serial=%q firmware=%q clock=%s\n",
				info.DeviceType, info.Serial, info.Firmware, info.Clock)
			return nil
		}
	}
	for _, opcode := range []byte{
		protocol.CmdMeasure, protocol.CmdReadSettings,
		protocol.CmdWriteSettings, protocol.CmdStartRecording,
		protocol.CmdReadRecords,
	} {
		fields, err := protocol.ExpectAck(body, opcode)
		if err != nil {
			continue
		}
		fmt.Printf("  acknowledges opcode 0x%02x, %d field byte(s)\n", opcode, len(fields))
		switch opcode {
		case protocol.CmdMeasure:
			if s, err := protocol.DecodeSample(fields); err == nil {
				fmt.Printf("  sample: %s °C  %s %%RH\n", s.Temperature, s.Humidity)
			}
		case protocol.CmdReadSettings:
			if rec, err := protocol.DecodeSettings(fields); err == nil {
				fmt.Printf("  settings: rate=%ds led=%ds start=%s count=%d clock=%s\n",
					rec.SampleRate, rec.LEDInterval, rec.StartCondition,
					rec.RecordCount, rec.Clock)
			}
		case protocol.CmdReadRecords:
			if page, err := protocol.DecodeRecordPage(fields); err == nil {
				for _, r := range page {
					fmt.Printf("  record: %s  %s °C  %s %%RH\n",
						r.Time, r.Temperature, r.Humidity)
				}
			}
		}
		return nil
	}

	fmt.Println("  body matches no known response shape")
	return nil
}
