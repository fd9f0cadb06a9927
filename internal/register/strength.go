package register

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"
	"unicode/utf8"
)

// Score grades a password from 0 (weak) to 4 (very strong).
type Score uint8

const (
	ScoreWeak Score = iota
	ScoreFair
	ScoreGood
	ScoreStrong
	ScoreVeryStrong
)

func (s Score) String() string {
	switch s {
	case ScoreWeak:
		return "weak"
	case ScoreFair:
		return "fair"
	case ScoreGood:
		return "good"
	case ScoreStrong:
		return "strong"
	case ScoreVeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// Strength scores password by length in characters and character-class
// variety.
func Strength(password []byte) Score {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range string(password) {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	complexity := 0
	for _, has := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if has {
			complexity++
		}
	}

	n := utf8.RuneCount(password)
	switch {
	case complexity >= 4 && n >= 20:
		return ScoreVeryStrong
	case complexity >= 3 && n >= 16:
		return ScoreStrong
	case complexity >= 2 && n >= 12:
		return ScoreGood
	case complexity >= 2 || n >= 12:
		return ScoreFair
	default:
		return ScoreWeak
	}
}

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.?/"
	allChars    = lowerChars + upperChars + digitChars + symbolChars
)

const (
	// MinGeneratedLength is the shortest password GeneratePassword produces.
	MinGeneratedLength = 8

	// MaxGeneratedLength is the longest password GeneratePassword produces.
	MaxGeneratedLength = 1024
)

// GeneratePassword returns a random password of length n containing at least
// one character of every class.
func GeneratePassword(n int) ([]byte, error) {
	if n < MinGeneratedLength {
		return nil, fmt.Errorf("generated passwords must be at least %d characters, got %d", MinGeneratedLength, n)
	}
	if n > MaxGeneratedLength {
		return nil, fmt.Errorf("generated passwords must be at most %d characters, got %d", MaxGeneratedLength, n)
	}

	out := make([]byte, n)
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	for i := range out {
		set := allChars
		if i < len(classes) {
			set = classes[i]
		}
		c, err := randomChar(set)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}

	// Shuffle so the guaranteed classes are not always at the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, fmt.Errorf("failed to shuffle password: %w", err)
		}
		k := int(j.Int64())
		out[i], out[k] = out[k], out[i]
	}
	return out, nil
}

func randomChar(set string) (byte, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate password: %w", err)
	}
	return set[idx.Int64()], nil
}
