package sim

import "container/heap"

type eventKind int

const (
	eventNewCall eventKind = iota + 1
	eventHandoffCall
	eventCallEnd
)

type event struct {
	at   float64
	kind eventKind
	seq  uint64
}

// eventQueue is a min-heap on time. Events scheduled for the same instant
// fire in the order they were scheduled.
type eventQueue struct {
	items []event
	next  uint64
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	if q.items[i].at != q.items[j].at {
		return q.items[i].at < q.items[j].at
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *eventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *eventQueue) Push(x any) { q.items = append(q.items, x.(event)) }

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	e := old[n-1]
	q.items = old[:n-1]
	return e
}

func (q *eventQueue) schedule(at float64, kind eventKind) {
	heap.Push(q, event{at: at, kind: kind, seq: q.next})
	q.next++
}

func (q *eventQueue) pop() event {
	return heap.Pop(q).(event)
}
