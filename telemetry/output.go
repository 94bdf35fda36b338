package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/field"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	traceFile *os.File
	statsFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	traceHeaderWritten bool
	statsHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace.csv: %w", err)
	}
	om.traceFile = f

	f, err = os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		om.traceFile.Close()
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.traceFile.Close()
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteField saves the generated particle field as field.csv.
func (om *OutputManager) WriteField(buf *field.Buffer) error {
	if om == nil || buf == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "field.csv"))
	if err != nil {
		return fmt.Errorf("creating field.csv: %w", err)
	}
	defer f.Close()

	if err := WriteParticles(f, buf); err != nil {
		return fmt.Errorf("writing field: %w", err)
	}
	return nil
}

// WriteTrace writes a frame record to trace.csv.
func (om *OutputManager) WriteTrace(rec FrameRecord) error {
	if om == nil {
		return nil
	}

	records := []FrameRecord{rec}

	if !om.traceHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.traceFile); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		om.traceHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.traceFile); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}

	return nil
}

// WriteStats writes a motion window record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files. Closing twice is a no-op.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.traceFile != nil {
		if err := om.traceFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		om.traceFile = nil
	}

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		om.statsFile = nil
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		om.perfFile = nil
	}

	return firstErr
}
