package catch

import "time"

// StreamID names one of the periodic streams driven by the scheduler.
type StreamID int

const (
	StreamGood StreamID = iota
	StreamCoin
	StreamHazard
	StreamCountdown
	streamCount
)

// String returns a readable stream name.
func (id StreamID) String() string {
	switch id {
	case StreamGood:
		return "good"
	case StreamCoin:
		return "coin"
	case StreamHazard:
		return "hazard"
	case StreamCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// spawnStreams maps each spawn stream to the kind it produces.
var spawnStreams = [...]struct {
	id   StreamID
	kind Kind
}{
	{StreamGood, KindGood},
	{StreamCoin, KindCoin},
	{StreamHazard, KindHazard},
}

type stream struct {
	interval time.Duration
	next     time.Duration
	active   bool
}

// Scheduler is a simulated clock with a fixed set of periodic streams.
// It owns no goroutines or timers; time only moves when Advance is called,
// so stopping a stream is just clearing its record.
type Scheduler struct {
	now     time.Duration
	streams [streamCount]stream
}

// Now returns the current simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Start (re)arms a stream. The first fire happens one interval from now.
// Non-positive intervals are ignored.
func (s *Scheduler) Start(id StreamID, interval time.Duration) {
	if id < 0 || id >= streamCount || interval <= 0 {
		return
	}
	s.streams[id] = stream{
		interval: interval,
		next:     s.now + interval,
		active:   true,
	}
}

// StopAll disarms every stream.
func (s *Scheduler) StopAll() {
	for i := range s.streams {
		s.streams[i] = stream{}
	}
}

// Advance moves the clock forward by dt and calls fire for every due
// stream in chronological order. Ties go to the lower stream id.
// fire runs with the clock set to the fire time and may start or stop
// streams, including the one that fired.
func (s *Scheduler) Advance(dt time.Duration, fire func(id StreamID)) {
	if dt <= 0 {
		return
	}
	target := s.now + dt

	for {
		due := StreamID(-1)
		for i := range s.streams {
			st := &s.streams[i]
			if !st.active || st.next > target {
				continue
			}
			if due < 0 || st.next < s.streams[due].next {
				due = StreamID(i)
			}
		}
		if due < 0 {
			break
		}

		st := &s.streams[due]
		s.now = st.next
		st.next += st.interval
		if fire != nil {
			fire(due)
		}
	}

	s.now = target
}
