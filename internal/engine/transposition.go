package engine

import (
	"github.com/danielpang35/rustychess/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// MateWindow and mateBase anchor the mate-score normalization that lets
// scores stored at one ply be reused, unchanged, at another.
const (
	MateWindow = 90000
	mateBase   = 99999
)

// TTEntry is one slot of a bucket. Empty slots have Depth == -1.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int32
	Depth    int8
	Flag     TTFlag
}

func (e *TTEntry) empty() bool {
	return e.Depth == -1
}

const bucketWidth = 4

// TranspositionTable is a 4-way set-associative hash table for search
// results, indexed by the low bits of the Zobrist key. Replacement within
// a bucket prefers an existing same-key slot, then any empty slot, then the
// shallowest entry.
type TranspositionTable struct {
	entries []TTEntry // len is buckets*bucketWidth
	buckets uint64
	mask    uint64

	probes uint64
	hits   uint64
}

// NewTranspositionTable creates a table sized to the largest power-of-two
// bucket count that fits within sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 24 // approximate sizeof(TTEntry) in bytes
	totalEntries := uint64(sizeMB) * 1024 * 1024 / entrySize
	buckets := roundDownToPowerOf2(totalEntries / bucketWidth)
	if buckets == 0 {
		buckets = 1
	}

	tt := &TranspositionTable{
		entries: make([]TTEntry, buckets*bucketWidth),
		buckets: buckets,
		mask:    buckets - 1,
	}
	tt.Clear()
	return tt
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) bucket(key uint64) []TTEntry {
	idx := key & tt.mask
	return tt.entries[idx*bucketWidth : idx*bucketWidth+bucketWidth]
}

// Probe scans the 4-entry bucket for a matching full key. The returned
// score is denormalized for ply via AdjustScoreFromTT by the caller.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.probes++
	for _, e := range tt.bucket(key) {
		if !e.empty() && e.Key == key {
			tt.hits++
			return e, true
		}
	}
	return TTEntry{}, false
}

// Store applies the §4.6 replacement policy: prefer overwriting a same-key
// slot when the new data is at least as deep or exact; otherwise fill an
// empty slot; otherwise evict the shallowest entry in the bucket.
func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	bucket := tt.bucket(key)

	for i := range bucket {
		e := &bucket[i]
		if e.empty() || e.Key != key {
			continue
		}
		if depth >= int(e.Depth) || flag == TTExact {
			e.BestMove, e.Score, e.Depth, e.Flag = bestMove, int32(score), int8(depth), flag
		} else if e.BestMove == board.NoMove {
			e.BestMove = bestMove
		}
		return
	}

	for i := range bucket {
		if bucket[i].empty() {
			bucket[i] = TTEntry{Key: key, BestMove: bestMove, Score: int32(score), Depth: int8(depth), Flag: flag}
			return
		}
	}

	shallowest := 0
	for i := 1; i < len(bucket); i++ {
		if bucket[i].Depth < bucket[shallowest].Depth {
			shallowest = i
		}
	}
	bucket[shallowest] = TTEntry{Key: key, BestMove: bestMove, Score: int32(score), Depth: int8(depth), Flag: flag}
}

// Clear resets every slot to empty.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{Depth: -1}
	}
	tt.probes = 0
	tt.hits = 0
}

// HashFull samples the table and returns parts-per-thousand occupancy.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > uint64(len(tt.entries)) {
		sampleSize = len(tt.entries)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if !tt.entries[i].empty() {
			used++
		}
	}
	if sampleSize == 0 {
		return 0
	}
	return used * 1000 / sampleSize
}

// HitRate returns the probe hit rate as a percentage, for diagnostics.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// AdjustScoreFromTT denormalizes a mate score read from the table back to
// the current ply, so that a cached "mate in N from this position" is
// converted to the root-relative score the search uses at this ply.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateWindow {
		return score - ply
	}
	if score < -MateWindow {
		return score + ply
	}
	return score
}

// AdjustScoreToTT normalizes a mate score so it is independent of the ply
// at which it was proved, making it reusable from other plies.
func AdjustScoreToTT(score, ply int) int {
	if score > MateWindow {
		return score + ply
	}
	if score < -MateWindow {
		return score - ply
	}
	return score
}
