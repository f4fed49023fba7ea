package mastery

import (
	"sort"
	"sync"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Store owns all mastery records, keyed by user then topic. Records are
// recomputed from the full event history whenever a batch of new events
// arrives; the store never patches scores incrementally.
//
// Reads hand out snapshots, so recommendation requests operate on a stable
// copy while updates proceed. Updates for the same user serialize under a
// per-user lock (read-modify-write), so two concurrent batches cannot
// interleave a partial recomputation.
type Store struct {
	graph *topicgraph.Graph
	cfg   Config

	mu      sync.RWMutex
	events  map[string]map[string][]Event // user -> topic -> history
	records map[string]map[string]Record  // user -> topic -> mastery
	userMu  map[string]*sync.Mutex
}

// NewStore creates an empty store bound to a topic graph.
func NewStore(g *topicgraph.Graph, cfg Config) *Store {
	return &Store{
		graph:   g,
		cfg:     cfg,
		events:  make(map[string]map[string][]Event),
		records: make(map[string]map[string]Record),
		userMu:  make(map[string]*sync.Mutex),
	}
}

// Graph returns the topic graph the store validates events against.
func (s *Store) Graph() *topicgraph.Graph {
	return s.graph
}

func (s *Store) lockUser(user string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.userMu[user]
	if !ok {
		mu = &sync.Mutex{}
		s.userMu[user] = mu
	}
	return mu
}

// ApplyEvents appends a batch of events for a user and recomputes mastery
// for every affected topic. The batch is all-or-nothing: if any event fails
// validation, no event is applied and no record changes.
func (s *Store) ApplyEvents(user string, batch []Event) error {
	if len(batch) == 0 {
		return nil
	}

	// Validate the whole batch up front so a bad event cannot leave a
	// partially applied batch behind.
	for _, e := range batch {
		if err := e.validate(); err != nil {
			return err
		}
		if !s.graph.Contains(e.Topic) {
			return &InvalidEventError{Topic: e.Topic}
		}
	}

	userLock := s.lockUser(user)
	userLock.Lock()
	defer userLock.Unlock()

	s.mu.RLock()
	history := cloneHistory(s.events[user])
	s.mu.RUnlock()

	affected := make(map[string]bool)
	for _, e := range batch {
		history[e.Topic] = append(history[e.Topic], e)
		affected[e.Topic] = true
	}

	updated := make(map[string]Record, len(affected))
	for topic := range affected {
		rec, err := ComputeMastery(s.graph, topic, history[topic], s.cfg)
		if err != nil {
			return err
		}
		updated[topic] = rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[user] = history
	if s.records[user] == nil {
		s.records[user] = make(map[string]Record)
	}
	for topic, rec := range updated {
		s.records[user][topic] = rec
	}
	return nil
}

// UserRecords returns a copy of the user's mastery records, sorted by topic.
func (s *Store) UserRecords(user string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.records[user]))
	for _, rec := range s.records[user] {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Topic < recs[j].Topic })
	return recs
}

// UserEvents returns a copy of the user's full event history, sorted by time.
func (s *Store) UserEvents(user string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []Event
	for _, evs := range s.events[user] {
		all = append(all, evs...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].At.Before(all[j].At) })
	return all
}

// Users returns the IDs of all users with at least one mastery record.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]string, 0, len(s.records))
	for u := range s.records {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// Snapshot returns an immutable copy of every user's topic scores. Requests
// compute against the snapshot, so concurrent updates cannot change results
// mid-computation.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.records))
	for user, recs := range s.records {
		scores := make(map[string]float64, len(recs))
		for topic, rec := range recs {
			scores[topic] = rec.Score
		}
		snap[user] = scores
	}
	return snap
}

// RestoreUser replaces a user's records and event history wholesale, used
// when warm-starting from a persisted snapshot instead of recomputing every
// topic. events must be the full history the snapshot was computed from;
// subsequent batches append to it and recompute as usual.
func (s *Store) RestoreUser(user string, recs []Record, events []Event) {
	userLock := s.lockUser(user)
	userLock.Lock()
	defer userLock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(map[string]Record, len(recs))
	for _, rec := range recs {
		m[rec.Topic] = rec
	}
	s.records[user] = m

	history := make(map[string][]Event)
	for _, e := range events {
		history[e.Topic] = append(history[e.Topic], e)
	}
	s.events[user] = history
}

// Snapshot maps user IDs to their topic mastery scores.
type Snapshot map[string]map[string]float64

// Scores returns the topic scores for one user (nil when unknown).
func (s Snapshot) Scores(user string) map[string]float64 {
	return s[user]
}

func cloneHistory(h map[string][]Event) map[string][]Event {
	out := make(map[string][]Event, len(h))
	for topic, evs := range h {
		copied := make([]Event, len(evs))
		copy(copied, evs)
		out[topic] = copied
	}
	return out
}
