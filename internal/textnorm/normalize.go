// Package textnorm prepares Portuguese text for embedding: lowercasing,
// stripping everything but letters and whitespace, and dropping stopwords.
package textnorm

import (
	"bufio"
	_ "embed"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed stopwords_pt.txt
var stopwordsFile string

var (
	stopwordsOnce sync.Once
	stopwords     map[string]struct{}
)

// accented lists the non-ASCII letters kept by Normalize.
const accented = "áéíóúãõç"

func loadStopwords() map[string]struct{} {
	stopwordsOnce.Do(func() {
		stopwords = make(map[string]struct{})
		scanner := bufio.NewScanner(strings.NewReader(stopwordsFile))
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" {
				continue
			}
			stopwords[norm.NFC.String(word)] = struct{}{}
		}
	})
	return stopwords
}

// Normalize lowercases text, removes every rune that is not a basic Latin
// letter, one of á é í ó ú ã õ ç, or whitespace, then drops Portuguese
// stopwords and joins the remaining tokens with single spaces.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := cases.Lower(language.Portuguese).String(norm.NFC.String(text))

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case unicode.IsSpace(r):
			return r
		case strings.ContainsRune(accented, r):
			return r
		}
		return -1
	}, lowered)

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, word := range words {
		if IsStopword(word) {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// IsStopword reports whether word, already lowercased, is a Portuguese stopword.
func IsStopword(word string) bool {
	_, ok := loadStopwords()[word]
	return ok
}

// Stopwords returns the stopword list in sorted order.
func Stopwords() []string {
	set := loadStopwords()
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
