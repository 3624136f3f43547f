package sim

import (
	"math"
	"math/rand/v2"
)

// Result holds the counters of a finished run.
type Result struct {
	EndTime           float64
	CallsConnected    int
	CallsBlocked      int
	HandoffsConnected int
	HandoffsDropped   int

	// busyArea is the integral of busy channels over time.
	busyArea float64
}

// Utilization is the time-average fraction of busy channels.
func (r Result) Utilization() float64 {
	if r.EndTime == 0 {
		return 0
	}
	return r.busyArea / r.EndTime / MaxChannels
}

// BlockProbability is the share of new calls that found no free channel.
// It is NaN when no new call arrived.
func (r Result) BlockProbability() float64 {
	return ratio(r.CallsBlocked, r.CallsConnected+r.CallsBlocked)
}

// DropProbability is the share of handoff calls that found no free channel.
// It is NaN when no handoff arrived.
func (r Result) DropProbability() float64 {
	return ratio(r.HandoffsDropped, r.HandoffsConnected+r.HandoffsDropped)
}

// TotalCalls counts every arrival, connected or not.
func (r Result) TotalCalls() int {
	return r.CallsConnected + r.CallsBlocked + r.HandoffsConnected + r.HandoffsDropped
}

func ratio(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}

// streams are independent random sources, one per stochastic input.
type streams struct {
	callArrival    *rand.Rand
	handoffArrival *rand.Rand
	holding        *rand.Rand
}

func newStreams(seed uint64) streams {
	return streams{
		callArrival:    rand.New(rand.NewPCG(seed, 1)),
		handoffArrival: rand.New(rand.NewPCG(seed, 2)),
		holding:        rand.New(rand.NewPCG(seed, 3)),
	}
}

func expon(mean float64, r *rand.Rand) float64 {
	return r.ExpFloat64() * mean
}

// Run simulates the station until the clock reaches p.Duration. The same
// seed always yields the same result.
func Run(p Params, seed uint64) Result {
	var (
		rng   = newStreams(seed)
		queue = &eventQueue{}
		res   Result
		clock float64
		busy  int
	)

	queue.schedule(expon(p.MeanCallInterarrival(), rng.callArrival), eventNewCall)
	queue.schedule(expon(p.MeanHandoffInterarrival(), rng.handoffArrival), eventHandoffCall)

	for clock < float64(p.Duration) {
		ev := queue.pop()
		res.busyArea += float64(busy) * (ev.at - clock)
		clock = ev.at

		switch ev.kind {
		case eventNewCall:
			if busy < MaxChannels {
				busy++
				res.CallsConnected++
				queue.schedule(clock+expon(p.MeanHoldingTime(), rng.holding), eventCallEnd)
			} else {
				res.CallsBlocked++
			}
			queue.schedule(clock+expon(p.MeanCallInterarrival(), rng.callArrival), eventNewCall)
		case eventHandoffCall:
			if busy < MaxChannels {
				busy++
				res.HandoffsConnected++
				queue.schedule(clock+expon(p.MeanHoldingTime(), rng.holding), eventCallEnd)
			} else {
				res.HandoffsDropped++
			}
			queue.schedule(clock+expon(p.MeanHandoffInterarrival(), rng.handoffArrival), eventHandoffCall)
		case eventCallEnd:
			busy--
		}
	}

	res.EndTime = clock
	return res
}
