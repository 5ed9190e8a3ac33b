// Package evaluator reduces any 7-card hand to an integer strength in
// 1..7462, where 1 is the royal flush and 7462 is the worst high card.
//
// The heavy lifting, enumerating the 7462 distinct hand classes in
// strength order, happens once in GenerateRankTables and is then shipped
// as a small binary file so a long-running solver process never pays that
// cost. At evaluation time a flush is resolved directly from a 13-bit
// per-suit rank mask; everything else is resolved by packing the hand's
// rank-count shape into an integer key and probing a small open-addressed
// hash table built from the same three tables that are persisted to disk.
package evaluator

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"os"
	"sort"

	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/errs"
	"github.com/riverbend/huholdem/internal/fileutil"
)

const (
	fileMagic   = 0x48524E4B
	fileVersion = 3
	maskSize    = 1 << 13 // 8192, one slot per 13-bit rank mask
	canonSize   = 1 << 16 // 65536-slot linear-probed hash table
	hashMagic   = 0xE91AAA35
)

// productEntry is one (prime product -> rank) pair for a 5-card class that
// contains at least one pair, kept sorted by product for binary search.
type productEntry struct {
	Product int32
	Rank    int16
}

type canonSlot struct {
	key  uint64
	rank int16
}

// RankTables holds everything needed to evaluate hands: the two flush-path
// lookup tables, the product table for paired non-flush classes, and the
// canonical hash table rebuilt from them. It has no package-level
// singleton; callers load or generate one and share it by reference.
type RankTables struct {
	FlushTable   [maskSize]int16
	Unique5Table [maskSize]int16
	Products     []productEntry

	canon []canonSlot
}

// GenerateRankTables enumerates all C(52,5) five-card hands, assigns each
// of the resulting 7462 distinct classes its strength rank, and returns a
// ready-to-use RankTables.
func GenerateRankTables() *RankTables {
	classSet := make(map[handClass]struct{}, 8192)
	forEachFiveCardHand(func(ranks [5]int, flush bool) {
		classSet[classifyRanks(ranks, flush)] = struct{}{}
	})

	classes := make([]handClass, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].less(classes[j]) })

	rankOf := make(map[handClass]int16, len(classes))
	for i, c := range classes {
		rankOf[c] = int16(i + 1)
	}

	rt := &RankTables{}
	productSeen := make(map[int32]int16)

	forEachFiveCardHand(func(ranks [5]int, flush bool) {
		class := classifyRanks(ranks, flush)
		rank := rankOf[class]
		mask := maskOf(ranks)
		switch {
		case flush:
			rt.FlushTable[mask] = rank
		case allDistinct(ranks):
			rt.Unique5Table[mask] = rank
		default:
			p := primeProduct(ranks)
			productSeen[p] = rank
		}
	})

	rt.Products = make([]productEntry, 0, len(productSeen))
	for p, r := range productSeen {
		rt.Products = append(rt.Products, productEntry{Product: p, Rank: r})
	}
	sort.Slice(rt.Products, func(i, j int) bool { return rt.Products[i].Product < rt.Products[j].Product })

	rt.extendFlushTable()
	rt.buildCanon()
	return rt
}

// extendFlushTable fills in entries for 6- and 7-bit suit masks (reachable
// when a player's suited cards plus the board give more than five cards of
// one suit), each reduced to the best 5-card flush or straight flush
// already computed for the base 5-bit masks.
func (rt *RankTables) extendFlushTable() {
	for mask := 0; mask < maskSize; mask++ {
		n := bits.OnesCount16(uint16(mask))
		if n != 6 && n != 7 {
			continue
		}
		var counts [13]int
		for r := 0; r < 13; r++ {
			if mask&(1<<uint(r)) != 0 {
				counts[r] = 1
			}
		}
		if high := straightHigh(counts); high >= 0 {
			rt.FlushTable[mask] = rt.FlushTable[straightMaskFor(high)]
			continue
		}
		rt.FlushTable[mask] = rt.FlushTable[topBitsMask(uint16(mask), 5)]
	}
}

// buildCanon derives the canonical-hash lookup table directly from the
// generator's rank assignment. LoadRankTables rebuilds the same table from
// a persisted file via rebuildCanonFromTables instead.
func (rt *RankTables) buildCanon() {
	rt.canon = make([]canonSlot, canonSize)
	forEachFiveCardHand(func(ranks [5]int, flush bool) {
		class := classifyRanks(ranks, flush)
		var rank int16
		if flush {
			rank = rt.FlushTable[maskOf(ranks)]
		} else if allDistinct(ranks) {
			rank = rt.Unique5Table[maskOf(ranks)]
		} else {
			rank = rankForProduct(rt.Products, primeProduct(ranks))
		}
		rt.insertCanon(class.pack(), rank)
	})
}

// rebuildCanonFromTables reconstructs the canonical-hash table purely from
// the three tables the binary file carries, without re-enumerating all 2.6
// million five-card hands.
func (rt *RankTables) rebuildCanonFromTables() {
	rt.canon = make([]canonSlot, canonSize)
	for mask := 0; mask < maskSize; mask++ {
		if bits.OnesCount16(uint16(mask)) != 5 {
			continue
		}
		ranks := ranksOfMask(uint16(mask))
		if rank := rt.Unique5Table[mask]; rank != 0 {
			rt.insertCanon(classifyRanks(ranks, false).pack(), rank)
		}
		if rank := rt.FlushTable[mask]; rank != 0 {
			rt.insertCanon(classifyRanks(ranks, true).pack(), rank)
		}
	}
	for _, e := range rt.Products {
		ranks := ranksFromProduct(e.Product)
		rt.insertCanon(classifyRanks(ranks, false).pack(), e.Rank)
	}
}

func (rt *RankTables) insertCanon(key uint64, rank int16) {
	idx := mixIndex(key)
	for {
		if rt.canon[idx].key == 0 || rt.canon[idx].key == key {
			rt.canon[idx] = canonSlot{key: key, rank: rank}
			return
		}
		idx = (idx + 1) % canonSize
	}
}

func (rt *RankTables) lookupCanon(key uint64) HandRank {
	idx := mixIndex(key)
	for probes := 0; probes < canonSize; probes++ {
		slot := rt.canon[idx]
		if slot.key == key {
			return HandRank(slot.rank)
		}
		if slot.key == 0 {
			break
		}
		idx = (idx + 1) % canonSize
	}
	return 0
}

func mixIndex(key uint64) int {
	hi := uint32(key >> 32)
	lo := uint32(key)
	h := uint32(hi^lo) * hashMagic
	return int((h >> 16) & 0xFFFF)
}

// Evaluate reduces the union of hand and board to a strength in 1..7462.
func (rt *RankTables) Evaluate(hand, board deck.Bitboard) HandRank {
	combined := hand | board
	for s := deck.Suit(0); s < 4; s++ {
		mask := combined.SuitMask(s)
		if bits.OnesCount16(mask) >= 5 {
			return HandRank(rt.FlushTable[mask])
		}
	}

	var counts [13]int
	for r := 0; r < 13; r++ {
		for s := deck.Suit(0); s < 4; s++ {
			if combined&(1<<(uint(r)+16*uint(s))) != 0 {
				counts[r]++
			}
		}
	}
	class := classifyCounts(counts)
	return rt.lookupCanon(class.pack())
}

// EvaluateCards is a convenience wrapper over Evaluate for callers holding
// plain deck.Card slices rather than bitboards.
func (rt *RankTables) EvaluateCards(cards []deck.Card) HandRank {
	return rt.Evaluate(deck.NewBitboard(cards), 0)
}

// WriteFile persists the flush, unique-5, and product tables to path using
// the shared atomic-write helper so a reader never observes a torn file.
func (rt *RankTables) WriteFile(path string) error {
	buf := make([]byte, 0, 16+2*maskSize*2+len(rt.Products)*6)
	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:4], fileMagic)
	binary.LittleEndian.PutUint32(header[4:8], fileVersion)
	binary.LittleEndian.PutUint32(header[8:12], maskSize)
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(rt.Products)))
	buf = append(buf, header...)

	for _, v := range rt.FlushTable {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}
	for _, v := range rt.Unique5Table {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}
	for _, e := range rt.Products {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e.Product))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(e.Rank))
	}
	return fileutil.WriteFileAtomic(path, buf, 0o644)
}

// LoadRankTables reads a table file written by WriteFile and rebuilds the
// in-memory canonical-hash table from its contents.
func LoadRankTables(path string) (*RankTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTableLoad, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", errs.ErrTableLoad, err)
	}
	magic := binary.LittleEndian.Uint32(header[0:4])
	version := binary.LittleEndian.Uint32(header[4:8])
	size := binary.LittleEndian.Uint32(header[8:12])
	productCount := binary.LittleEndian.Uint32(header[12:16])
	if magic != fileMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", errs.ErrTableLoad, magic)
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrTableLoad, version)
	}
	if size != maskSize {
		return nil, fmt.Errorf("%w: unexpected mask size %d", errs.ErrTableLoad, size)
	}

	rt := &RankTables{}
	for i := range rt.FlushTable {
		v, err := readUint16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: flush table: %v", errs.ErrTableLoad, err)
		}
		rt.FlushTable[i] = int16(v)
	}
	for i := range rt.Unique5Table {
		v, err := readUint16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: unique5 table: %v", errs.ErrTableLoad, err)
		}
		rt.Unique5Table[i] = int16(v)
	}
	rt.Products = make([]productEntry, productCount)
	for i := range rt.Products {
		prod, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: product table: %v", errs.ErrTableLoad, err)
		}
		rank, err := readUint16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: product table: %v", errs.ErrTableLoad, err)
		}
		rt.Products[i] = productEntry{Product: int32(prod), Rank: int16(rank)}
	}

	rt.rebuildCanonFromTables()
	return rt, nil
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
