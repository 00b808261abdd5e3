package qb

import (
	"strconv"
	"strings"
)

// binder allocates unique placeholder tags and owns the tag -> value mapping
// for one build cycle. Tags derive from the column key with "." replaced by
// "_"; when the same key is bound twice, a monotonic counter suffix is
// appended to the key before substitution, so output is deterministic and
// collisions are impossible rather than merely unlikely.
type binder struct {
	tags   []string // insertion order, for deterministic iteration
	values map[string]any
	seq    int
}

func newBinder() *binder {
	return &binder{values: make(map[string]any)}
}

// bind stores value under a tag unique within this binder and returns the
// tag for embedding as ":tag" in SQL text.
func (b *binder) bind(key string, value any) string {
	tag := strings.ReplaceAll(key, ".", "_")
	for {
		if _, taken := b.values[tag]; !taken {
			break
		}
		b.seq++
		tag = strings.ReplaceAll(key+strconv.Itoa(b.seq), ".", "_")
	}
	b.tags = append(b.tags, tag)
	b.values[tag] = value
	return tag
}
