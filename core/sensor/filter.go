package sensor

import (
	"example.com/fuzzy-cruise/base/floats"
)

// MedianFilter smooths every input of a Source by the median of its most
// recent readings.
type MedianFilter struct {
	src     Source
	window  int
	history map[string][]float64 // fixed-size ring buffers
	index   map[string]int
	buf     []float64
}

var _ Source = (*MedianFilter)(nil)

func NewMedianFilter(src Source, window int) *MedianFilter {
	if window < 1 {
		panic("invalid median filter window")
	}
	return &MedianFilter{
		src:     src,
		window:  window,
		history: map[string][]float64{},
		index:   map[string]int{},
		buf:     make([]float64, 0, window),
	}
}

func (f *MedianFilter) add(name string, x float64) []float64 {
	h := f.history[name]
	if len(h) < f.window {
		h = append(h, x)
		f.history[name] = h
	} else {
		i := f.index[name]
		h[i] = x
		f.index[name] = (i + 1) % f.window
	}
	return h
}

func (f *MedianFilter) Next() (map[string]float64, error) {
	sample, err := f.src.Next()
	if err != nil {
		return nil, err
	}
	smoothed := make(map[string]float64, len(sample))
	for name, x := range sample {
		// Median sorts its argument; keep the ring buffer in arrival order.
		f.buf = append(f.buf[:0], f.add(name, x)...)
		smoothed[name] = floats.Median(f.buf)
	}
	return smoothed, nil
}

func (f *MedianFilter) Reset() {
	clear(f.history)
	clear(f.index)
}
