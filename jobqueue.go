package loadable

import "container/heap"

type job struct {
	weight Weight
	seq    uint64
	f      func()
}

func (j job) less(other job) bool {
	if j.weight != other.weight {
		return j.weight > other.weight
	}
	return j.seq < other.seq
}

// A jobqueue is a priority queue of jobs, ordered by weight (greater first)
// and, among equal weights, by arrival order (FIFO).
type jobqueue struct {
	s jobheap
}

func (q *jobqueue) Empty() bool {
	return len(q.s) == 0
}

func (q *jobqueue) Push(j job) {
	heap.Push(&q.s, j)
}

func (q *jobqueue) Pop() job {
	return heap.Pop(&q.s).(job)
}

type jobheap []job

func (h jobheap) Len() int           { return len(h) }
func (h jobheap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h jobheap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *jobheap) Push(v any) {
	*h = append(*h, v.(job))
}

func (h *jobheap) Pop() (v any) {
	s := *h
	n := len(s) - 1
	v, s[n] = s[n], job{}
	*h = s[:n]
	return v
}
