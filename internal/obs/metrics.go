package obs

import (
	"io"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// Recorder is a Meter backed by its own Prometheus registry. Metric vectors
// are created on first use; the label keys of that first call fix the
// vector's label set and later calls with other keys are dropped.
type Recorder struct {
	reg *prometheus.Registry

	mu       sync.Mutex
	counters map[string]*prometheus.CounterVec
	hists    map[string]*prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	return &Recorder{
		reg:      prometheus.NewRegistry(),
		counters: make(map[string]*prometheus.CounterVec),
		hists:    make(map[string]*prometheus.HistogramVec),
	}
}

// Registry exposes the underlying registry, for scraping or extra collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) Counter(name string, value float64, labels ...Label) {
	keys, values := split(labels)
	r.mu.Lock()
	vec, ok := r.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, keys)
		if err := r.reg.Register(vec); err != nil {
			r.mu.Unlock()
			return
		}
		r.counters[name] = vec
	}
	r.mu.Unlock()
	c, err := vec.GetMetricWith(values)
	if err != nil {
		return
	}
	// Counters only go up; negative deltas would panic.
	if value >= 0 {
		c.Add(value)
	}
}

func (r *Recorder) Histogram(name string, value float64, labels ...Label) {
	keys, values := split(labels)
	r.mu.Lock()
	vec, ok := r.hists[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: name, Buckets: prometheus.DefBuckets}, keys)
		if err := r.reg.Register(vec); err != nil {
			r.mu.Unlock()
			return
		}
		r.hists[name] = vec
	}
	r.mu.Unlock()
	o, err := vec.GetMetricWith(values)
	if err != nil {
		return
	}
	o.Observe(value)
}

// CounterValue returns the current value of a counter series, or 0.
func (r *Recorder) CounterValue(name string, labels ...Label) float64 {
	if m := r.find(name, labels); m != nil {
		return m.GetCounter().GetValue()
	}
	return 0
}

// HistogramCount returns how many observations a histogram series has.
func (r *Recorder) HistogramCount(name string, labels ...Label) int {
	if m := r.find(name, labels); m != nil {
		return int(m.GetHistogram().GetSampleCount())
	}
	return 0
}

// TextContentType is the Content-Type of WriteText output.
var TextContentType = string(textFormat)

var textFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

// WriteText writes the registry in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, textFormat)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// find gathers the registry and returns the series of name whose labels
// equal labels exactly.
func (r *Recorder) find(name string, labels []Label) *dto.Metric {
	mfs, err := r.reg.Gather()
	if err != nil {
		return nil
	}
	want := make(map[string]string, len(labels))
	for _, l := range labels {
		want[l.Key] = l.Value
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			if len(m.GetLabel()) != len(want) {
				continue
			}
			for _, lp := range m.GetLabel() {
				if v, ok := want[lp.GetName()]; !ok || v != lp.GetValue() {
					continue next
				}
			}
			return m
		}
	}
	return nil
}

// split returns label keys and values ordered by key, so callers may pass
// labels in any order.
func split(labels []Label) (keys []string, values prometheus.Labels) {
	keys = make([]string, 0, len(labels))
	values = make(prometheus.Labels, len(labels))
	for _, l := range labels {
		keys = append(keys, l.Key)
		values[l.Key] = l.Value
	}
	sort.Strings(keys)
	return keys, values
}
