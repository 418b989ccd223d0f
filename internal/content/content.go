// internal/content/content.go
//
// Static content tables for the six mini-games.
//
// Responsibilities:
//   - Load one read-only table per game type from JSON, exactly once.
//   - Supply bounds-validated lookups indexed by level (and, where a game has
//     several puzzles per level, by challenge-within-level).
//   - Never hand out an undefined entry: an out-of-range level or index is
//     logged and answered with the first level's first challenge.
//
// Tables:
//   - memory.json     pool of card symbols for the memory-match game.
//   - pairs.json      per-level lists of left/right pairs.
//   - patterns.json   per-level lists of pattern-completion challenges.
//   - oddone.json     per-level lists of odd-one-out challenges.
//   - sequences.json  per-level ordered item lists.
//   - colors.json     palette for the color-repeat game.
//
// Initialization behavior (Init):
//   1. If CONTENT_DIR is set, each table is read from <dir>/<name>.json.
//   2. Otherwise the embedded defaults ship with the binary.
//
// Lists are immutable after Init; callers must not modify returned slices.

package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed data/*.json
var embedded embed.FS

// Pair is one left/right match in the pair-matching game.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// PatternChallenge is one fill-the-blank pattern. Sequence ends with "?",
// Options always contains Answer.
type PatternChallenge struct {
	Sequence []string `json:"sequence"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// OddOneChallenge is one odd-one-out set. Answer is the item that doesn't
// belong and always appears in Items.
type OddOneChallenge struct {
	Items  []string `json:"items"`
	Answer string   `json:"answer"`
}

var (
	initOnce   sync.Once
	initialErr error

	memoryPool     []string
	pairLevels     [][]Pair
	patternLevels  [][]PatternChallenge
	oddOneLevels   [][]OddOneChallenge
	sequenceLevels [][]string
	colorPalette   []string
)

// Init loads all content tables exactly once.
// Returns an error if any table is missing, malformed, or empty.
func Init() error {
	initOnce.Do(func() {
		dir := os.Getenv("CONTENT_DIR")

		load := func(name string, v any) error {
			var (
				raw []byte
				err error
			)
			if dir != "" {
				raw, err = os.ReadFile(filepath.Join(dir, name))
			} else {
				raw, err = embedded.ReadFile("data/" + name)
			}
			if err != nil {
				return fmt.Errorf("content: read %s: %w", name, err)
			}
			if err := json.Unmarshal(raw, v); err != nil {
				return fmt.Errorf("content: parse %s: %w", name, err)
			}
			return nil
		}

		for _, step := range []struct {
			name string
			dst  any
		}{
			{"memory.json", &memoryPool},
			{"pairs.json", &pairLevels},
			{"patterns.json", &patternLevels},
			{"oddone.json", &oddOneLevels},
			{"sequences.json", &sequenceLevels},
			{"colors.json", &colorPalette},
		} {
			if err := load(step.name, step.dst); err != nil {
				initialErr = err
				return
			}
		}

		initialErr = validate()
	})
	return initialErr
}

// validate rejects tables that would leave a game without a playable level.
func validate() error {
	switch {
	case len(memoryPool) < 2:
		return errors.New("content: memory pool needs at least 2 symbols")
	case len(pairLevels) == 0, len(patternLevels) == 0,
		len(oddOneLevels) == 0, len(sequenceLevels) == 0:
		return errors.New("content: every game needs at least one level")
	case len(colorPalette) < 2:
		return errors.New("content: color palette needs at least 2 colors")
	}
	for i, row := range patternLevels {
		if len(row) == 0 {
			return fmt.Errorf("content: patterns level %d has no challenges", i+1)
		}
	}
	for i, row := range oddOneLevels {
		if len(row) == 0 {
			return fmt.Errorf("content: oddone level %d has no challenges", i+1)
		}
	}
	for i, row := range pairLevels {
		if len(row) == 0 {
			return fmt.Errorf("content: pairs level %d is empty", i+1)
		}
	}
	for i, row := range sequenceLevels {
		if len(row) < 2 {
			return fmt.Errorf("content: sequence level %d is too short", i+1)
		}
	}
	return nil
}

// clampLevel validates a 1-based level against a table size and substitutes
// the first level on out-of-range input.
func clampLevel(game string, level, total int) int {
	if level < 1 || level > total {
		log.Warn().Str("game", game).Int("level", level).Int("max", total).
			Msg("content level out of range, using first level")
		return 1
	}
	return level
}

// MemoryPool returns the card symbol pool for the memory game.
func MemoryPool() []string { return memoryPool }

// PairsLevels reports how many levels the pair-matching game has.
func PairsLevels() int { return len(pairLevels) }

// PairsLevel returns the pairs for a level.
func PairsLevel(level int) []Pair {
	return pairLevels[clampLevel("pairs", level, len(pairLevels))-1]
}

// PatternLevels reports how many levels the pattern game has.
func PatternLevels() int { return len(patternLevels) }

// PatternChallenges reports how many challenges a pattern level has.
func PatternChallenges(level int) int {
	return len(patternLevels[clampLevel("pattern", level, len(patternLevels))-1])
}

// Pattern returns one pattern challenge by (level, index).
func Pattern(level, idx int) PatternChallenge {
	row := patternLevels[clampLevel("pattern", level, len(patternLevels))-1]
	if idx < 0 || idx >= len(row) {
		log.Warn().Int("level", level).Int("index", idx).
			Msg("pattern challenge out of range, using first challenge")
		return patternLevels[0][0]
	}
	return row[idx]
}

// OddOneLevels reports how many levels the odd-one-out game has.
func OddOneLevels() int { return len(oddOneLevels) }

// OddOneChallenges reports how many challenges an odd-one-out level has.
func OddOneChallenges(level int) int {
	return len(oddOneLevels[clampLevel("oddone", level, len(oddOneLevels))-1])
}

// OddOne returns one odd-one-out challenge by (level, index).
func OddOne(level, idx int) OddOneChallenge {
	row := oddOneLevels[clampLevel("oddone", level, len(oddOneLevels))-1]
	if idx < 0 || idx >= len(row) {
		log.Warn().Int("level", level).Int("index", idx).
			Msg("oddone challenge out of range, using first challenge")
		return oddOneLevels[0][0]
	}
	return row[idx]
}

// SequenceLevels reports how many levels the ordering game has.
func SequenceLevels() int { return len(sequenceLevels) }

// SequenceLevel returns a level's items in canonical order.
func SequenceLevel(level int) []string {
	return sequenceLevels[clampLevel("sequence", level, len(sequenceLevels))-1]
}

// ColorPalette returns the color ids for the repeat-the-sequence game.
func ColorPalette() []string { return colorPalette }

// Stats returns the per-table level counts (memory and colors are pool-based
// and report pool sizes instead).
func Stats() map[string]int {
	return map[string]int{
		"memoryPool":     len(memoryPool),
		"pairsLevels":    len(pairLevels),
		"patternLevels":  len(patternLevels),
		"oddoneLevels":   len(oddOneLevels),
		"sequenceLevels": len(sequenceLevels),
		"colorPalette":   len(colorPalette),
	}
}
