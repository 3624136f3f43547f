package sim

import (
	"fmt"
	"io"
)

// reportWriter keeps the first write error so the report body can be a flat
// sequence of printf calls.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

// WriteHeader writes the title, constants and input parameters.
func WriteHeader(w io.Writer, p Params) error {
	rw := &reportWriter{w: w}
	rw.printf("               Single base station simulation\n")
	rw.printf("--------------------------------------------------------------\n\n")
	rw.printf("[CONSTANTS]\n\n")
	rw.printf("Max number of channels:%20d\n\n\n", MaxChannels)
	rw.printf("[INPUT PARAMETERS]\n\n")
	rw.printf("Mean call arrival time:%20.3f calls per second\n\n", p.CallRate)
	rw.printf("Mean call handoff arrival time:%12.3f calls per second\n\n", p.HandoffRate)
	rw.printf("Mean service rate per channel:%13.3f calls per second\n\n", p.ServiceRate)
	rw.printf("Minimum simulation duration:%15.3d seconds\n\n", p.Duration)
	rw.printf("Mean traffic load:%25.3f\n\n\n", p.TrafficLoad())
	return rw.err
}

// WriteMetrics writes the performance and termination sections.
func WriteMetrics(w io.Writer, r Result) error {
	rw := &reportWriter{w: w}
	rw.printf("[PERFORMANCE METRICS]\n")
	rw.printf("\nBase Station Channel Utilization:%10.1f%%\n", 100*r.Utilization())
	rw.printf("\n(New) Call Block Probability:%14.1f%%\n", 100*r.BlockProbability())
	rw.printf("\nHandoff Dropping Probability:%14.1f%%\n\n", 100*r.DropProbability())
	rw.printf("\n[TERMINATION METRICS]\n")
	rw.printf("\nTime simulation ended:%21.3f seconds\n", r.EndTime)
	rw.printf("\nTotal calls simulated:%21d calls\n", r.TotalCalls())
	return rw.err
}
