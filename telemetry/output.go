package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/thrust/config"
)

// FlightSample is one frame of ship state.
type FlightSample struct {
	Frame  uint64  `csv:"frame"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Rot    float64 `csv:"rot"`
	SpeedX float64 `csv:"speed_x"`
	SpeedY float64 `csv:"speed_y"`
}

// csvTable appends records of one type to a writer, emitting the header
// only with the first write.
type csvTable[T any] struct {
	w             io.Writer
	headerWritten bool
}

func (t *csvTable[T]) write(records []T) error {
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return err
		}
		t.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, t.w)
}

// FlightRecorder writes FlightSamples as CSV.
type FlightRecorder struct {
	table csvTable[FlightSample]
}

// NewFlightRecorder creates a recorder writing to w.
func NewFlightRecorder(w io.Writer) *FlightRecorder {
	return &FlightRecorder{table: csvTable[FlightSample]{w: w}}
}

// Record appends one sample.
func (r *FlightRecorder) Record(s FlightSample) error {
	if err := r.table.write([]FlightSample{s}); err != nil {
		return fmt.Errorf("writing flight sample: %w", err)
	}
	return nil
}

// ReadFlight parses a flight CSV previously written by a FlightRecorder.
func ReadFlight(r io.Reader) ([]FlightSample, error) {
	var samples []FlightSample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("reading flight csv: %w", err)
	}
	return samples, nil
}

// OutputManager handles run output: flight.csv, perf.csv and a config snapshot.
type OutputManager struct {
	dir        string
	flightFile *os.File
	perfFile   *os.File

	flight *FlightRecorder
	perf   csvTable[PerfStatsCSV]
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

	f, err := os.Create(filepath.Join(dir, "flight.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating flight.csv: %w", err)
	}
	om.flightFile = f
	om.flight = NewFlightRecorder(f)

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.flightFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f
	om.perf = csvTable[PerfStatsCSV]{w: f}

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFlight appends a flight sample to flight.csv.
func (om *OutputManager) WriteFlight(s FlightSample) error {
	if om == nil {
		return nil
	}
	return om.flight.Record(s)
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.flightFile.Close(), om.perfFile.Close())
}
