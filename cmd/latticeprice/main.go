package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/meenmo/lattice/config"
)

type priceInput struct {
	TaskID        string   `json:"task_id,omitempty"`
	Product       string   `json:"product"`
	ValuationDate string   `json:"valuation_date"`
	ExpiryDate    string   `json:"expiry_date"`
	FixingDates   []string `json:"fixing_dates,omitempty"`
	Holidays      []string `json:"holidays,omitempty"`
	BusinessDay   string   `json:"business_day,omitempty"`
	DayCount      string   `json:"day_count,omitempty"`
	Spot          float64  `json:"spot"`
	Strike        float64  `json:"strike"`
	Barrier       float64  `json:"barrier,omitempty"`
	Vol           float64  `json:"vol"`
	Rate          float64  `json:"rate"`
	Dividend      float64  `json:"dividend"`
	Quality       float64  `json:"quality,omitempty"`
	PathQuality   float64  `json:"path_quality,omitempty"`
	Decimals      *int32   `json:"decimals,omitempty"`
}

type priceOutput struct {
	TaskID     string    `json:"task_id,omitempty"`
	Product    string    `json:"product,omitempty"`
	Price      float64   `json:"price"`
	Reference  *float64  `json:"reference,omitempty"`
	EventTimes []float64 `json:"event_times,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	configPath := flag.String("config", "", "YAML engine configuration path")
	verbose := flag.Bool("v", false, "Log lattice construction to stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: latticeprice [-config <yaml>] [-v] -input <path>")
		fmt.Fprintln(os.Stderr, "Price equity options on a Black-Scholes lattice.")
		fmt.Fprintln(os.Stderr, "Products: european_call, european_put, asian_call, barrier_up_out_call.")
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(strings.TrimSpace(*configPath))
	if err != nil {
		exitError(fmt.Sprintf("config: %v", err))
	}
	config.SetConfig(cfg)

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: latticeprice -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]priceOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in, logger)
		if err != nil {
			hadError = true
			logger.Warn("pricing failed", "task_id", in.TaskID, "error", err)
			outputs = append(outputs, priceOutput{TaskID: in.TaskID, Product: in.Product, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

// loadConfig reads the YAML file when given, then applies LATTICE_*
// environment overrides.
func loadConfig(path string) (config.Config, error) {
	c := config.DefaultConfig
	if path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return c, err
		}
	}
	return config.FromEnv(c)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]priceInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []priceInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input priceInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []priceInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(priceOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
