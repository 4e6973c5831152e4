package metrics

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"
)

// captureOutput swaps the package writer for a buffer for the duration of a test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return &buf
}

func TestNew_AutoDimension(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "translate-lambda")
	saved := lambdaName
	lambdaName = func() string { return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") }
	defer func() { lambdaName = saved }()

	r := New(Namespace)
	if r.namespace != Namespace {
		t.Errorf("expected namespace %s, got %s", Namespace, r.namespace)
	}
	if r.dimensions["FunctionName"] != "translate-lambda" {
		t.Errorf("expected FunctionName dimension, got %q", r.dimensions["FunctionName"])
	}
}

func TestRecorder_FlushOutput(t *testing.T) {
	buf := captureOutput(t)

	New(Namespace).
		Dimension("Operation", "translate").
		Metric("UpstreamLatencyMs", 812.5, UnitMilliseconds).
		Count("UpstreamCalls").
		Property("model", "llama3-8b-8192").
		Flush()

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse EMF output as JSON: %v\nOutput: %s", err, buf.String())
	}

	awsMap, ok := doc["_aws"].(map[string]interface{})
	if !ok {
		t.Fatal("missing _aws directive in EMF output")
	}
	if _, ok := awsMap["Timestamp"]; !ok {
		t.Error("missing Timestamp in _aws directive")
	}
	cwArr, ok := awsMap["CloudWatchMetrics"].([]interface{})
	if !ok || len(cwArr) == 0 {
		t.Fatal("CloudWatchMetrics should be a non-empty array")
	}
	cw := cwArr[0].(map[string]interface{})
	if cw["Namespace"] != Namespace {
		t.Errorf("expected namespace %s, got %v", Namespace, cw["Namespace"])
	}

	if doc["Operation"] != "translate" {
		t.Errorf("expected Operation=translate, got %v", doc["Operation"])
	}
	if doc["UpstreamLatencyMs"] != 812.5 {
		t.Errorf("expected UpstreamLatencyMs=812.5, got %v", doc["UpstreamLatencyMs"])
	}
	if doc["UpstreamCalls"] != float64(1) {
		t.Errorf("expected UpstreamCalls=1, got %v", doc["UpstreamCalls"])
	}
	if doc["model"] != "llama3-8b-8192" {
		t.Errorf("expected model property, got %v", doc["model"])
	}
}

func TestRecorder_FlushEmpty(t *testing.T) {
	buf := captureOutput(t)

	New("Test").Flush()

	if buf.Len() != 0 {
		t.Errorf("expected no output for empty recorder, got: %s", buf.String())
	}
}

func TestRecorder_Duration(t *testing.T) {
	rec := New("Test").Duration("LatencyMs", 1500*time.Millisecond)

	v, unit, ok := rec.Value("LatencyMs")
	if !ok || v != 1500 {
		t.Errorf("expected LatencyMs=1500, got %v (present=%v)", v, ok)
	}
	if unit != UnitMilliseconds {
		t.Errorf("expected unit Milliseconds, got %s", unit)
	}
}

func TestRecorder_CountAccumulates(t *testing.T) {
	rec := New("Test").Count("Fallbacks").Count("Fallbacks")

	if v, _, _ := rec.Value("Fallbacks"); v != 2 {
		t.Errorf("expected Fallbacks=2, got %v", v)
	}
}

func TestRecorder_MetricOverwrites(t *testing.T) {
	rec := New("Test").
		Metric("ImageBytes", 10, UnitBytes).
		Metric("ImageBytes", 20, UnitBytes)

	if v, _, _ := rec.Value("ImageBytes"); v != 20 {
		t.Errorf("expected last value 20, got %v", v)
	}
	if _, _, ok := rec.Value("Missing"); ok {
		t.Error("unknown metric should not be present")
	}
}

func TestSetOutput_Discard(t *testing.T) {
	SetOutput(io.Discard)
	defer SetOutput(os.Stdout)

	// Must not panic or write anywhere observable.
	New("Test").Count("Calls").Flush()
}
