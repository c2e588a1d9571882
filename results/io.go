package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pumpsim-xyz/go-pumpsim/transient"
)

// WriteJSON writes results to a JSON file.
func WriteJSON(results *Results, filename string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// ReadJSON reads results from a JSON file.
func ReadJSON(filename string) (*Results, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &results, nil
}

// ToJSON converts results to a JSON string.
func ToJSON(results *Results) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON parses results from a JSON string.
func FromJSON(jsonStr string) (*Results, error) {
	var results Results
	if err := json.Unmarshal([]byte(jsonStr), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// WriteSeriesCSV writes one simulated series as time,flow,power rows for
// external tooling. Ingestion of raw sensor CSVs is out of scope; this is
// export only.
func WriteSeriesCSV(w io.Writer, series []transient.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "flow", "power"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range series {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 2, 64),
			strconv.FormatFloat(s.Flow, 'f', 2, 64),
			strconv.FormatFloat(s.Power, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCaseCSV writes the named case's series to a CSV file.
func WriteCaseCSV(results *Results, label, filename string) error {
	for _, c := range results.Cases {
		if c.Label != label {
			continue
		}
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		defer f.Close()
		return WriteSeriesCSV(f, c.Series)
	}
	return fmt.Errorf("no case labeled %q", label)
}
