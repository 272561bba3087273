package store

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/colorfield/internal/trace"
)

type ExportSample struct {
	Time  time.Time `json:"time"`
	Hex   string    `json:"hex"`
	RGB   [3]uint8  `json:"rgb"`
	Label string    `json:"label"`
}

type ExportData struct {
	Run     RunMetadata    `json:"run"`
	Samples []ExportSample `json:"samples"`
}

func NewExportData(meta RunMetadata, samples []trace.Sample) ExportData {
	data := ExportData{
		Run:     meta,
		Samples: make([]ExportSample, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Time:  s.Time,
			Hex:   s.Color.Hex(),
			RGB:   [3]uint8{s.Color.R, s.Color.G, s.Color.B},
			Label: s.Label,
		}
	}
	return data
}

// ExportJSON writes a run and its samples as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, samples []trace.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(meta, samples))
}
