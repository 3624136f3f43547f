package sim

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	p, err := ParseArgs([]string{"10.0", "20.0", "5.0", "600.9"})
	require.NoError(t, err)
	want := Params{CallRate: 10, HandoffRate: 20, ServiceRate: 5, Duration: 600}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.1, p.MeanCallInterarrival(), 1e-12)
	assert.InDelta(t, 0.05, p.MeanHandoffInterarrival(), 1e-12)
	assert.InDelta(t, 0.2, p.MeanHoldingTime(), 1e-12)
	assert.InDelta(t, 0.06, p.TrafficLoad(), 1e-12)
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr error
		wantArg string
	}{
		{name: "wrong count", args: []string{"1", "2"}, wantErr: ErrUsage},
		{name: "zero", args: []string{"0", "2", "3", "4"}, wantErr: ErrInvalidInput, wantArg: "0"},
		{name: "negative", args: []string{"1", "-2", "3", "4"}, wantErr: ErrInvalidInput, wantArg: "-2"},
		{name: "not a number", args: []string{"1", "2", "x", "4"}, wantErr: ErrInvalidInput, wantArg: "x"},
		{name: "sub-second duration", args: []string{"1", "2", "3", "0.9"}, wantErr: ErrInvalidInput, wantArg: "0.9"},
		{name: "infinite", args: []string{"Inf", "2", "3", "4"}, wantErr: ErrInvalidInput, wantArg: "Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseArgs(tc.args)
			require.ErrorIs(t, err, tc.wantErr)

			var inputErr *InputError
			if errors.As(err, &inputErr) {
				require.Equal(t, tc.wantArg, inputErr.Arg)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	path, err := OutputPath("/work", []string{"10.0", "20.0", "5.0", "3.0"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/work", "out", "10.0_20.0_5.0.out"), path)

	// 40 characters of arguments plus 10 of decoration reaches the limit.
	_, err = OutputPath("", []string{strings.Repeat("1", 31), strings.Repeat("2", 8), "3"})
	require.ErrorIs(t, err, ErrFilenameTooLong)

	_, err = OutputPath("", []string{strings.Repeat("1", 30), strings.Repeat("2", 8), "3"})
	require.NoError(t, err)
}

func TestEventQueueOrder(t *testing.T) {
	t.Parallel()

	q := &eventQueue{}
	q.schedule(2, eventCallEnd)
	q.schedule(1, eventNewCall)
	q.schedule(2, eventHandoffCall)
	q.schedule(0.5, eventCallEnd)

	var got []eventKind
	for q.Len() > 0 {
		got = append(got, q.pop().kind)
	}
	want := []eventKind{eventCallEnd, eventNewCall, eventCallEnd, eventHandoffCall}
	require.Equal(t, want, got)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	p := Params{CallRate: 10, HandoffRate: 20, ServiceRate: 5, Duration: 100}

	first := Run(p, 99)
	second := Run(p, 99)

	require.Equal(t, first, second)
	require.GreaterOrEqual(t, first.EndTime, 100.0)
	require.Positive(t, first.TotalCalls())
}

func TestRun_LightLoadNeverBlocks(t *testing.T) {
	t.Parallel()

	// Offered load is 0.06 Erlang per channel; a full station is practically impossible.
	r := Run(Params{CallRate: 10, HandoffRate: 20, ServiceRate: 5, Duration: 200}, 3)

	assert.Zero(t, r.CallsBlocked)
	assert.Zero(t, r.HandoffsDropped)
	assert.Zero(t, r.BlockProbability())
	// Little's law: busy channels ≈ λ/μ = 6, so utilization ≈ 6%.
	assert.InDelta(t, 0.06, r.Utilization(), 0.02)
}

func TestRun_OverloadBlocks(t *testing.T) {
	t.Parallel()

	// 1000 arrivals per second against 100 channels with a 10 s holding time.
	r := Run(Params{CallRate: 500, HandoffRate: 500, ServiceRate: 0.1, Duration: 50}, 11)

	assert.Positive(t, r.CallsBlocked)
	assert.Positive(t, r.HandoffsDropped)
	assert.Greater(t, r.BlockProbability(), 0.5)
	assert.LessOrEqual(t, r.Utilization(), 1.0)
	assert.Greater(t, r.Utilization(), 0.9)
}

func TestResult_EmptyRatiosAreNaN(t *testing.T) {
	t.Parallel()

	var r Result
	assert.True(t, math.IsNaN(r.BlockProbability()))
	assert.True(t, math.IsNaN(r.DropProbability()))
	assert.Zero(t, r.Utilization())
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	p := Params{CallRate: 10, HandoffRate: 20, ServiceRate: 5, Duration: 600}
	r := Result{EndTime: 600.25, CallsConnected: 90, CallsBlocked: 10, HandoffsConnected: 40, HandoffsDropped: 0, busyArea: 600.25 * 50}

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, p))
	require.NoError(t, WriteMetrics(&buf, r))

	text := buf.String()
	assert.Contains(t, text, "Mean call arrival time:              10.000 calls per second")
	assert.Contains(t, text, "Minimum simulation duration:            600 seconds")
	assert.Contains(t, text, "Mean traffic load:                    0.060")
	assert.Contains(t, text, "Base Station Channel Utilization:      50.0%")
	assert.Contains(t, text, "(New) Call Block Probability:          10.0%")
	assert.Contains(t, text, "Handoff Dropping Probability:           0.0%")
	assert.Contains(t, text, "Time simulation ended:              600.250 seconds")
	assert.Contains(t, text, "Total calls simulated:                  140 calls")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReport_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	err := WriteHeader(failingWriter{}, Params{CallRate: 1, HandoffRate: 1, ServiceRate: 1, Duration: 1})
	require.EqualError(t, err, "disk full")
}
