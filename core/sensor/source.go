package sensor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/fuzzy-cruise/base/metrics"
)

var (
	errNoHeader       = errors.New("missing header row")
	errDuplicateInput = errors.New("duplicate input column")

	samplesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.SensorSamplesN,
		Help: metrics.SensorSamplesH,
	})
)

// Source yields one sample of input readings per call, keyed by input
// variable name. Next returns io.EOF once the source is exhausted.
type Source interface {
	Next() (map[string]float64, error)
}

// CSVSource reads samples from comma separated text. The first row names
// the inputs; every following row holds one reading per input.
type CSVSource struct {
	r      *csv.Reader
	header []string
	line   int
}

var _ Source = (*CSVSource)(nil)

func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("%w: column %d is unnamed", errNoHeader, i+1)
		}
		if _, ok := seen[h]; ok {
			return nil, fmt.Errorf("%w: %q", errDuplicateInput, h)
		}
		seen[h] = struct{}{}
		header[i] = h
	}
	return &CSVSource{r: cr, header: header, line: 1}, nil
}

// Inputs returns the input names from the header row.
func (s *CSVSource) Inputs() []string {
	return s.header
}

func (s *CSVSource) Next() (map[string]float64, error) {
	rec, err := s.r.Read()
	if err != nil {
		return nil, err
	}
	s.line++
	sample := make(map[string]float64, len(rec))
	for i, f := range rec {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", s.line, s.header[i], err)
		}
		sample[s.header[i]] = x
	}
	samplesRead.Inc()
	return sample, nil
}
