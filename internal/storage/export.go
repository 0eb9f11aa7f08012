package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/curesim/internal/sweep"
)

type ExportData struct {
	Material string               `json:"material"`
	Models   map[string]string    `json:"models,omitempty"`
	Axis     string               `json:"axis"`
	Fixed    float64              `json:"fixed"`
	Steps    int                  `json:"steps"`
	X        []float64            `json:"x"`
	Series   map[string][]float64 `json:"series"`
}

func NewExportData(res *sweep.Result, models map[string]string) ExportData {
	data := ExportData{
		Material: res.Material,
		Models:   models,
		Axis:     res.Axis.String(),
		Fixed:    res.Fixed,
		Steps:    len(res.X),
		X:        res.X,
		Series:   make(map[string][]float64, len(res.Series)),
	}
	for p, ys := range res.Series {
		data.Series[p.String()] = ys
	}
	return data
}

func WriteJSON(w io.Writer, res *sweep.Result, models map[string]string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(res, models))
}

func ExportJSON(path string, res *sweep.Result, models map[string]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res, models)
}

func ExportCSV(path string, res *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, res)
}
