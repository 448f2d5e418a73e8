package service

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turns(n int, content func(i int) string) []Turn {
	out := make([]Turn, n)
	for i := range out {
		role := models.RoleAssistant
		if i%2 == 1 {
			role = models.RoleUser
		}
		out[i] = Turn{Role: role, Content: content(i)}
	}
	return out
}

func TestCompact_ShortHistoryUnchanged(t *testing.T) {
	for _, n := range []int{0, 1, CompactThreshold} {
		history := turns(n, func(i int) string { return fmt.Sprintf("turn %d", i) })
		assert.Equal(t, history, Compact(history), "n=%d", n)
	}
}

func TestCompact_LongHistory(t *testing.T) {
	long := strings.Repeat("word ", 200)
	history := turns(31, func(i int) string {
		if i == 0 {
			return long
		}
		return fmt.Sprintf("turn %d", i)
	})
	original := make([]Turn, len(history))
	copy(original, history)

	got := Compact(history)

	require.Len(t, got, CompactKeep+1)
	assert.Equal(t, models.RoleSystem, got[0].Role)
	assert.True(t, strings.HasPrefix(got[0].Content, compactHeader))
	assert.Equal(t, history[21:], got[1:])
	assert.Equal(t, original, history, "input must not be modified")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(got[0].Content, compactHeader), "\n"), "\n")
	require.Len(t, lines, 21)
	assert.True(t, strings.HasPrefix(lines[0], "Defense Attorney: "))
	assert.True(t, strings.HasPrefix(lines[1], "Officer: turn 1"))

	for _, line := range lines {
		_, body, ok := strings.Cut(line, ": ")
		require.True(t, ok)
		assert.LessOrEqual(t, utf8.RuneCountInString(body), CompactExcerptRunes+3)
	}
	assert.True(t, strings.HasSuffix(lines[0], "..."))
}

func TestCompact_Idempotent(t *testing.T) {
	history := turns(45, func(i int) string { return fmt.Sprintf("turn %d", i) })

	once := Compact(history)
	assert.Equal(t, once, Compact(once))
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "fits", in: "short", n: 5, want: "short"},
		{name: "cut by runes", in: "héllo", n: 4, want: "héll..."},
		{name: "inner whitespace kept", in: "I  drew\tmy weapon", n: 50, want: "I  drew\tmy weapon"},
		{name: "line breaks become spaces", in: "first\nsecond\r\nthird", n: 50, want: "first second third"},
		{name: "cut before replacing line breaks", in: "ab\n\ncd", n: 3, want: "ab ..."},
		{name: "leading spaces count toward the limit", in: "   abcdef", n: 5, want: "   ab..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.in, tt.n))
		})
	}
}
