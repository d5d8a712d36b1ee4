package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestModerator(t *testing.T) *Moderator {
	t.Helper()
	// A single list: whatever language is detected, the fallback applies,
	// which keeps these assertions deterministic.
	m, err := NewModerator(map[string][]string{
		"eng": {"bazinga", "fiddlesticks"},
	}, "eng", '*')
	require.NoError(t, err)
	return m
}

func TestModerator_Masks_Censored_Words(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	req.Equal("what a ******* play", m.Censor("what a bazinga play"))
}

func TestModerator_Is_Case_Insensitive_But_Preserves_Clean_Text(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	req.Equal("What A ******* Play", m.Censor("What A BaZinGa Play"))
	req.Equal("A Perfectly Clean Sentence", m.Censor("A Perfectly Clean Sentence"))
}

func TestModerator_Masks_Every_Occurrence(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	req.Equal("******* and ************ again *******",
		m.Censor("bazinga and fiddlesticks again bazinga"))
}

func TestModerator_Empty_Content(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t)

	req.Equal("", m.Censor(""))
}

func TestDefaultWordlists_Loads_Embedded_Lists(t *testing.T) {
	req := require.New(t)

	lists, err := DefaultWordlists()

	req.NoError(err)
	req.Contains(lists, "eng")
	req.Contains(lists, "fra")
	req.NotEmpty(lists["eng"])
	req.NotEmpty(lists["fra"])
}
