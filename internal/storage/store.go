package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                `json:"id"`
	Material  string                `json:"material"`
	Models    map[string]string     `json:"models"`
	Timestamp time.Time             `json:"timestamp"`
	Axis      string                `json:"axis"`
	Fixed     float64               `json:"fixed"`
	Min       float64               `json:"min"`
	Max       float64               `json:"max"`
	Steps     int                   `json:"steps"`
	Ranges    map[string][2]float64 `json:"ranges"`
}

// Save writes a sweep result under a fresh run directory and returns its ID.
func (s *Store) Save(res *sweep.Result, models map[string]string) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", idPart(res.Material), res.Axis, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Material:  res.Material,
		Models:    models,
		Timestamp: now,
		Axis:      res.Axis.String(),
		Fixed:     res.Fixed,
		Steps:     len(res.X),
		Ranges:    make(map[string][2]float64, len(res.Series)),
	}
	if len(res.X) > 0 {
		meta.Min, meta.Max = res.X[0], res.X[len(res.X)-1]
	}
	for _, p := range sweep.Properties() {
		lo, hi := res.Range(p)
		meta.Ranges[p.String()] = [2]float64{lo, hi}
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, res); err != nil {
		return "", err
	}
	return runID, nil
}

// idPart keeps letters, digits, '-' and '.' of a material name so the run
// directory stays a single element under the base directory.
func idPart(name string) string {
	part := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
	part = strings.ReplaceAll(part, "..", "_")
	if part == "" || part == "." {
		return "material"
	}
	return part
}

// runDir resolves a run ID, rejecting IDs that are not a single path element.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: invalid run id %q", cure.ErrConfiguration, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a stored sweep back into a result.
func (s *Store) LoadSeries(runID string) (*sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	axis, err := sweep.ParseAxis(meta.Axis)
	if err != nil {
		return nil, err
	}

	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	res := &sweep.Result{
		Material: meta.Material,
		Axis:     axis,
		Fixed:    meta.Fixed,
		X:        make([]float64, 0, len(records)),
		Series:   make(map[sweep.Property][]float64),
	}
	if len(records) < 2 {
		return res, nil
	}

	header := records[0]
	props := make([]sweep.Property, len(header)-1)
	seen := make(map[sweep.Property]bool, len(props))
	for j, name := range header[1:] {
		if props[j], err = sweep.ParseProperty(name); err != nil {
			return nil, fmt.Errorf("%s: column %d: %w", seriesFile, j+1, err)
		}
		seen[props[j]] = true
	}
	for _, p := range sweep.Properties() {
		if !seen[p] {
			return nil, fmt.Errorf("%w: %s: missing column %s", cure.ErrConfiguration, seriesFile, p)
		}
	}

	for i, record := range records[1:] {
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", seriesFile, i+1, err)
		}
		res.X = append(res.X, x)
		for j, p := range props {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", seriesFile, i+1, err)
			}
			res.Series[p] = append(res.Series[p], v)
		}
	}
	return res, nil
}

// WriteCSV writes one row per sweep point with the axis value first. Every
// property series must have one value per point.
func WriteCSV(w io.Writer, res *sweep.Result) error {
	for _, p := range sweep.Properties() {
		if len(res.Series[p]) != len(res.X) {
			return fmt.Errorf("%w: %s series has %d values for %d points",
				cure.ErrConfiguration, p, len(res.Series[p]), len(res.X))
		}
	}

	cw := csv.NewWriter(w)

	header := []string{res.Axis.String()}
	for _, p := range sweep.Properties() {
		header = append(header, p.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, x := range res.X {
		row := []string{formatFloat(x)}
		for _, p := range sweep.Properties() {
			row = append(row, formatFloat(res.Series[p][i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Float columns span 1e-6 placeholders to 1e9 scaled values, so a fixed
// precision would round small values to zero.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
