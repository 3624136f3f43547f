// Package sim implements the single base station call simulation that the
// base_station launcher profile starts once per input line.
//
// A station owns a fixed pool of channels. New calls and handoff calls arrive
// as independent Poisson streams; each connected call holds a channel for an
// exponentially distributed time. Arrivals that find every channel busy are
// blocked (new calls) or dropped (handoffs).
package sim
