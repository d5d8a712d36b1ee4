// Package moderation masks censored words in chat content before it is
// persisted or delivered.
package moderation

import (
	"bufio"
	"embed"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

//go:embed words/*.txt
var wordsFS embed.FS

// Moderator holds one Aho-Corasick automaton per language. Language
// detection on the content picks the automaton; unknown languages fall back
// to the default list.
type Moderator struct {
	machines map[string]*goahocorasick.Machine
	fallback string
	mask     rune
}

// NewModerator builds the automatons from lowercased word lists keyed by
// ISO-639-3 language code.
func NewModerator(wordlists map[string][]string, fallback string, mask rune) (*Moderator, error) {
	machines := make(map[string]*goahocorasick.Machine, len(wordlists))
	for lang, words := range wordlists {
		patterns := make([][]rune, len(words))
		for i, word := range words {
			patterns[i] = []rune(strings.ToLower(word))
		}
		m := new(goahocorasick.Machine)
		if err := m.Build(patterns); err != nil {
			return nil, err
		}
		machines[lang] = m
	}
	return &Moderator{machines: machines, fallback: fallback, mask: mask}, nil
}

// Censor replaces every censored span with the mask character. Matching is
// case-insensitive; clean text keeps its original casing and spacing.
func (m *Moderator) Censor(content string) string {
	machine := m.machineFor(content)
	if machine == nil {
		return content
	}

	runes := []rune(content)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	terms := machine.MultiPatternSearch(lowered, false)
	if len(terms) == 0 {
		return content
	}
	for _, term := range terms {
		end := term.Pos + len(term.Word)
		for i := term.Pos; i < end && i < len(runes); i++ {
			runes[i] = m.mask
		}
	}
	return string(runes)
}

func (m *Moderator) machineFor(content string) *goahocorasick.Machine {
	info := whatlanggo.Detect(content)
	if machine, ok := m.machines[whatlanggo.LangToString(info.Lang)]; ok {
		return machine
	}
	return m.machines[m.fallback]
}

// DefaultWordlists loads the embedded censored-word lists, keyed by the
// language code in the file name. Blank lines and #-comments are skipped.
func DefaultWordlists() (map[string][]string, error) {
	entries, err := wordsFS.ReadDir("words")
	if err != nil {
		return nil, err
	}

	lists := make(map[string][]string, len(entries))
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".txt")

		f, err := wordsFS.Open("words/" + entry.Name())
		if err != nil {
			return nil, err
		}
		scanner := bufio.NewScanner(f)
		var words []string
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, line)
		}
		_ = f.Close()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		lists[lang] = words
	}
	return lists, nil
}
