// Package infoset implements the solver's information-set store: an
// open-addressed, linear-probed hash table keyed by (board, street, acting
// player, action history, bet state), holding each node's regret and
// strategy-sum vectors.
package infoset

import (
	"github.com/charmbracelet/log"

	"github.com/riverbend/huholdem/internal/bettree"
	"github.com/riverbend/huholdem/internal/errs"
)

const (
	initialCapacity = 500
	maxCapacity     = 50000
	growLoadFactor  = 0.75
)

// maxHistory bounds the number of actions tracked per street; a street
// cannot legally see more than this many moves given MaxRaises.
const maxHistory = 10

// Key identifies one decision node. Numeric BetState fields are quantized
// to hundredths of a big blind so that two reachable-but-distinct float
// paths which round to the same state hash identically.
type Key struct {
	BoardMask  uint64
	Street     bettree.Street
	Player     int
	NumActions int
	Actions    [maxHistory]int8
	Pot        int64
	ToCall     int64
	P0Put      int64
	P1Put      int64
}

// NewKey builds a Key from a decision node's components, quantizing the
// BetState to integer hundredths of a BB.
func NewKey(boardMask uint64, street bettree.Street, player int, history []bettree.Action, betSizeCount int, bet bettree.BetState) Key {
	k := Key{
		BoardMask:  boardMask,
		Street:     street,
		Player:     player,
		NumActions: len(history),
		Pot:        quantize(bet.Pot),
		ToCall:     quantize(bet.ToCall),
		P0Put:      quantize(bet.P0Put),
		P1Put:      quantize(bet.P1Put),
	}
	for i, a := range history {
		if i >= maxHistory {
			break
		}
		k.Actions[i] = int8(bettree.Index(a, betSizeCount))
	}
	return k
}

func quantize(bb float64) int64 {
	if bb >= 0 {
		return int64(bb*100 + 0.5)
	}
	return -int64(-bb*100 + 0.5)
}

// InfoSetData is the mutable state attached to one Key: a regret vector and
// a strategy-sum vector spanning the full action alphabet, plus a visit
// counter. Slots for actions that are never legal at this node are simply
// never touched.
type InfoSetData struct {
	Regret      []float64
	StrategySum []float64
	Visits      int
}

type slot struct {
	hash uint64
	key  Key
	data *InfoSetData
}

// Store is a solver's exclusive info-set table. It is not safe for
// concurrent use: each solver instance owns one store and walks its tree
// single-threaded, per the engine's concurrency model.
type Store struct {
	slots          []slot
	count          int
	degradedWarned bool
}

// New returns an empty store at its initial capacity.
func New() *Store {
	return &Store{slots: make([]slot, initialCapacity)}
}

// Size returns the number of occupied slots.
func (s *Store) Size() int {
	return s.count
}

// Lookup returns the data for key without creating it.
func (s *Store) Lookup(key Key) (*InfoSetData, bool) {
	hash := hashKey(key)
	capacity := len(s.slots)
	idx := int(hash % uint64(capacity))
	for i := 0; i < capacity; i++ {
		probe := (idx + i) % capacity
		sl := &s.slots[probe]
		if sl.hash == 0 {
			return nil, false
		}
		if sl.hash == hash && sl.key == key {
			return sl.data, true
		}
	}
	return nil, false
}

// GetOrCreate returns the data for key, creating a zero-initialized entry
// sized for actionCount actions if none exists yet. When the table is at
// its capacity ceiling and full, it degrades by reusing the bucket the key
// hashes to rather than refusing the insert.
func (s *Store) GetOrCreate(key Key, actionCount int) *InfoSetData {
	hash := hashKey(key)

	if s.loadFactor() > growLoadFactor && len(s.slots) < maxCapacity {
		s.grow()
	}

	capacity := len(s.slots)
	idx := int(hash % uint64(capacity))
	for i := 0; i < capacity; i++ {
		probe := (idx + i) % capacity
		sl := &s.slots[probe]
		if sl.hash == 0 {
			sl.hash = hash
			sl.key = key
			sl.data = newData(actionCount)
			s.count++
			return sl.data
		}
		if sl.hash == hash && sl.key == key {
			return sl.data
		}
	}

	return s.degrade(hash, key, actionCount)
}

func (s *Store) loadFactor() float64 {
	return float64(s.count+1) / float64(len(s.slots))
}

func (s *Store) grow() {
	newCap := len(s.slots) * 2
	if newCap > maxCapacity {
		newCap = maxCapacity
	}
	old := s.slots
	s.slots = make([]slot, newCap)
	s.count = 0
	for _, sl := range old {
		if sl.hash == 0 {
			continue
		}
		s.insertRaw(sl)
	}
}

func (s *Store) insertRaw(entry slot) {
	capacity := len(s.slots)
	idx := int(entry.hash % uint64(capacity))
	for i := 0; i < capacity; i++ {
		probe := (idx + i) % capacity
		if s.slots[probe].hash == 0 {
			s.slots[probe] = entry
			s.count++
			return
		}
	}
}

// degrade handles the table-at-capacity-and-full case: log once per store
// and reuse whatever bucket the key's hash lands on, sharing its regret
// state with whatever key already occupies it. This is a deliberate
// approximation; CFR values remain statistically meaningful under it.
func (s *Store) degrade(hash uint64, key Key, actionCount int) *InfoSetData {
	if !s.degradedWarned {
		log.Warn("degrading to bucket reuse", "err", errs.ErrCapacityExceeded, "capacity", len(s.slots))
		s.degradedWarned = true
	}
	idx := int(hash % uint64(len(s.slots)))
	sl := &s.slots[idx]
	if sl.data == nil {
		sl.hash = hash
		sl.key = key
		sl.data = newData(actionCount)
	}
	return sl.data
}

// SnapshotEntry is one occupied slot's persisted form, used by the solver's
// checkpoint writer/reader (sdk/solver) to dump and restore a store without
// exposing its internal slot/probing layout.
type SnapshotEntry struct {
	Key         Key
	Regret      []float64
	StrategySum []float64
	Visits      int
}

// Snapshot returns every occupied slot's key and data, in no particular
// order, for a checkpoint writer to persist.
func (s *Store) Snapshot() []SnapshotEntry {
	out := make([]SnapshotEntry, 0, s.count)
	for _, sl := range s.slots {
		if sl.hash == 0 {
			continue
		}
		out = append(out, SnapshotEntry{
			Key:         sl.key,
			Regret:      append([]float64(nil), sl.data.Regret...),
			StrategySum: append([]float64(nil), sl.data.StrategySum...),
			Visits:      sl.data.Visits,
		})
	}
	return out
}

// Restore rebuilds a store from entries previously produced by Snapshot,
// sized generously so the restored table does not immediately need to grow.
func Restore(entries []SnapshotEntry) *Store {
	capacity := initialCapacity
	for capacity < len(entries)*2 && capacity < maxCapacity {
		capacity *= 2
	}
	s := &Store{slots: make([]slot, capacity)}
	for _, e := range entries {
		data := s.GetOrCreate(e.Key, len(e.Regret))
		copy(data.Regret, e.Regret)
		copy(data.StrategySum, e.StrategySum)
		data.Visits = e.Visits
	}
	return s
}

func newData(actionCount int) *InfoSetData {
	return &InfoSetData{
		Regret:      make([]float64, actionCount),
		StrategySum: make([]float64, actionCount),
	}
}

// hashKey folds a Key to a 64-bit hash using the splitmix-style mixing
// function, never returning zero (the store's empty-slot sentinel) for a
// populated key.
func hashKey(k Key) uint64 {
	h := mix(uint64(k.BoardMask>>32), uint64(uint32(k.BoardMask)))
	h = mix(h, uint64(k.Street))
	h = mix(h, uint64(k.Player))
	h = mix(h, uint64(k.NumActions))
	for i := 0; i < k.NumActions && i < maxHistory; i++ {
		h = mix(h, uint64(k.Actions[i]))
	}
	h = mix(h, uint64(k.Pot))
	h = mix(h, uint64(k.ToCall))
	h = mix(h, uint64(k.P0Put))
	h = mix(h, uint64(k.P1Put))
	if h == 0 {
		h = 1
	}
	return h
}

func mix(a, b uint64) uint64 {
	return a ^ (b + 0x9E3779B97F4A7C15 + (a << 6) + (a >> 2))
}
