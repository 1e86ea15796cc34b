// Package dataset supplies training samples to the trainer: loading and
// saving sensor-log CSV files, generating synthetic rule-based data, and
// splitting datasets into train/test partitions.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spikenav/spikenav/internal/models"
)

// csvHeader is the required header row of a sensor log:
// four distances in centimeters followed by the action label.
var csvHeader = []string{"front", "left", "right", "back", "action"}

// Load reads training samples from a sensor-log CSV file.
// The file must have the header row "front,left,right,back,action";
// malformed rows abort the load with the offending line number.
func Load(path string) ([]models.TrainingSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sensor log: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Read parses sensor-log CSV from r. See Load.
func Read(r io.Reader) ([]models.TrainingSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("bad header column %d: got %q, want %q", i, header[i], want)
		}
	}

	var samples []models.TrainingSample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		var sample models.TrainingSample
		for i := 0; i < models.NumSensors; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %w", line, csvHeader[i], err)
			}
			sample.Readings[i] = v
		}
		action, err := models.ParseAction(strings.TrimSpace(record[models.NumSensors]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sample.Target = action

		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// Save writes samples as sensor-log CSV to path, header included.
func Save(path string, samples []models.TrainingSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sensor log: %w", err)
	}
	defer f.Close()

	if err := Write(f, samples); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Write writes samples as sensor-log CSV to w. See Save.
func Write(w io.Writer, samples []models.TrainingSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range samples {
		record := make([]string, 0, len(csvHeader))
		for _, d := range s.Readings {
			record = append(record, strconv.FormatFloat(d, 'f', -1, 64))
		}
		record = append(record, s.Target.String())
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
