package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print("temperature")
	p.Println(" 24.93")
	p.Newline()
	p.PrintLines("line one", "line two")

	got := buf.String()
	want := "temperature 24.93\n\nline one\nline two\n"
	if got != want {
		t.Errorf("Printer output = %q, want %q", got, want)
	}
}

func TestPrinterWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	if p.Width() < MinTerminalWidth {
		t.Errorf("Width() = %d, want at least %d", p.Width(), MinTerminalWidth)
	}
}

func TestPrinterHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHeader("Device Status", "dl2xx status", map[string]string{
		"Serial": "DL_210T123456789",
	})

	got := buf.String()
	if !strings.Contains(got, "DEVICE STATUS") {
		t.Errorf("PrintHeader() output missing uppercased title:\n%s", got)
	}
	if !strings.Contains(got, "DL_210T123456789") {
		t.Errorf("PrintHeader() output missing parameter value:\n%s", got)
	}
}

func TestPrinterResultBoxes(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		wants []string
	}{
		{
			name: "success box",
			print: func(p *Printer) {
				p.PrintSuccess("Configuration updated", map[string]string{
					"Sample rate": "60 s",
				})
			},
			wants: []string{"SUCCESS", "Configuration updated", "Sample rate", "60 s"},
		},
		{
			name: "warning box",
			print: func(p *Printer) {
				p.PrintWarning("No stored samples", map[string]string{
					"Hint": "start a recording session",
				})
			},
			wants: []string{"WARNING", "No stored samples", "start a recording session"},
		},
		{
			name: "error box with troubleshooting",
			print: func(p *Printer) {
				p.PrintError("Dump failed", errTest, []string{"Check the USB connection"})
			},
			wants: []string{"FAILED", "Dump failed", "device did not answer", "Check the USB connection"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			got := buf.String()
			for _, want := range tt.wants {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

type testError string

func (e testError) Error() string { return string(e) }

var errTest = testError("device did not answer")
