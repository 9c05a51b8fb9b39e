package types

import "fmt"

// Level buckets both users and words into a proficiency tier. Word indices are
// dense within a level, so a user's reading position is a per-level cursor.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// Levels lists all tiers in ascending difficulty order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown skill level %q", s)
}

func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil
}

// LevelCursor maps a level to the index of the next unseen word at that level.
// A missing key means the user has consumed nothing at that level yet.
type LevelCursor map[Level]int

func (c LevelCursor) Next(level Level) int {
	if c == nil {
		return 0
	}
	return c[level]
}

// Advanced returns a copy with the given level's cursor moved forward by n.
func (c LevelCursor) Advanced(level Level, n int) LevelCursor {
	out := make(LevelCursor, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[level] += n
	return out
}
