package views

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath           string
	ConfigExists         bool
	AppDataDir           string
	LogLevel             string
	LogFormat            string
	MemoryBackend        string
	MemoryPath           string
	ExpectedTransactions uint
	OutputPath           string
	Summary              bool
	MetricsTextfile      string
}

func RenderSystemInfo(w io.Writer, data SystemInfoItem) error {
	configStatus := pterm.Green("Found")
	if !data.ConfigExists {
		configStatus = pterm.Yellow("Not Found (using defaults)")
	}

	memoryPath := data.MemoryPath
	if memoryPath == "" {
		memoryPath = "(temp file, removed after run)"
	}
	outputPath := data.OutputPath
	if outputPath == "" {
		outputPath = "(stdout)"
	}
	metricsPath := data.MetricsTextfile
	if metricsPath == "" {
		metricsPath = "(disabled)"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Configuration Status", configStatus},
		{"AppData Directory", data.AppDataDir},
		{"Log Level", data.LogLevel},
		{"Log Format", data.LogFormat},
		{"Transaction Memory", data.MemoryBackend},
	}
	if data.MemoryBackend == "sqlite" {
		tableData = append(tableData,
			[]string{"SQLite Path", memoryPath},
			[]string{"Expected Transactions", fmt.Sprintf("%d", data.ExpectedTransactions)},
		)
	}
	tableData = append(tableData,
		[]string{"Snapshot Output", outputPath},
		[]string{"Run Summary", fmt.Sprintf("%t", data.Summary)},
		[]string{"Metrics Textfile", metricsPath},
	)

	out, err := pterm.DefaultTable.WithData(tableData).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
