// Package metrics writes CloudWatch Embedded Metric Format records. One
// Flush produces one JSON line; under Lambda the log pipeline turns it into
// metrics, so nothing here talks to the CloudWatch API.
//
// Binaries that own stdout (the CLI, the MCP stdio server) redirect the
// output with SetOutput(io.Discard).
//
// Format reference: https://docs.aws.amazon.com/AmazonCloudWatch/latest/monitoring/CloudWatch_Embedded_Metric_Format_Specification.html
package metrics

import (
	"encoding/json"
	"io"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Namespace is the CloudWatch namespace shared by every PolyLingo binary.
const Namespace = "PolyLingo"

// CloudWatch units used by PolyLingo.
const (
	UnitMilliseconds = "Milliseconds"
	UnitCount        = "Count"
	UnitBytes        = "Bytes"
	UnitPercent      = "Percent"
	UnitNone         = "None"
)

type sample struct {
	Name  string `json:"Name"`
	Unit  string `json:"Unit"`
	value float64
}

type directive struct {
	Timestamp         int64         `json:"Timestamp"`
	CloudWatchMetrics []metricGroup `json:"CloudWatchMetrics"`
}

type metricGroup struct {
	Namespace  string     `json:"Namespace"`
	Dimensions [][]string `json:"Dimensions"`
	Metrics    []sample   `json:"Metrics"`
}

// Recorder collects one EMF record. Use one per operation; it has no locking.
type Recorder struct {
	namespace  string
	dimensions map[string]string
	samples    []sample
	properties map[string]any
}

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout

	lambdaName = sync.OnceValue(func() string { return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") })
)

// SetOutput sends every later Flush to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// New starts a record in namespace. Under Lambda the FunctionName dimension
// is set for you.
func New(namespace string) *Recorder {
	r := &Recorder{
		namespace:  namespace,
		dimensions: map[string]string{},
		properties: map[string]any{},
	}
	if fn := lambdaName(); fn != "" {
		r.dimensions["FunctionName"] = fn
	}
	return r
}

// Dimension sets an indexed dimension.
func (r *Recorder) Dimension(key, value string) *Recorder {
	r.dimensions[key] = value
	return r
}

// Metric sets name to value. Setting the same name twice keeps the last value.
func (r *Recorder) Metric(name string, value float64, unit string) *Recorder {
	if i := r.index(name); i >= 0 {
		r.samples[i] = sample{Name: name, Unit: unit, value: value}
		return r
	}
	r.samples = append(r.samples, sample{Name: name, Unit: unit, value: value})
	return r
}

// Count adds one to a count metric.
func (r *Recorder) Count(name string) *Recorder {
	if i := r.index(name); i >= 0 && r.samples[i].Unit == UnitCount {
		r.samples[i].value++
		return r
	}
	return r.Metric(name, 1, UnitCount)
}

// Duration records d in whole milliseconds.
func (r *Recorder) Duration(name string, d time.Duration) *Recorder {
	return r.Metric(name, float64(d.Milliseconds()), UnitMilliseconds)
}

// Property attaches a searchable field that is not a metric.
func (r *Recorder) Property(key string, value any) *Recorder {
	r.properties[key] = value
	return r
}

// Value reports the recorded value and unit for name.
func (r *Recorder) Value(name string) (float64, string, bool) {
	i := r.index(name)
	if i < 0 {
		return 0, "", false
	}
	return r.samples[i].value, r.samples[i].Unit, true
}

func (r *Recorder) index(name string) int {
	return slices.IndexFunc(r.samples, func(s sample) bool { return s.Name == name })
}

// Flush writes the record as one JSON line. Records without metrics are
// dropped. Do not reuse a flushed Recorder.
func (r *Recorder) Flush() {
	if len(r.samples) == 0 {
		return
	}

	doc := make(map[string]any, 1+len(r.properties)+len(r.dimensions)+len(r.samples))
	maps.Copy(doc, r.properties)
	for k, v := range r.dimensions {
		doc[k] = v
	}
	for _, s := range r.samples {
		doc[s.Name] = s.value
	}
	doc["_aws"] = directive{
		Timestamp: time.Now().UnixMilli(),
		CloudWatchMetrics: []metricGroup{{
			Namespace:  r.namespace,
			Dimensions: [][]string{slices.Sorted(maps.Keys(r.dimensions))},
			Metrics:    r.samples,
		}},
	}

	line, err := json.Marshal(doc)
	if err != nil {
		log.Error().Err(err).Str("namespace", r.namespace).Msg("Dropping EMF record")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	_, _ = out.Write(append(line, '\n'))
}
