package helpers

import (
	"math/rand"
	"strings"
)

// Fuzzer provides utilities for generating adversarial input strings
type Fuzzer struct {
	rnd *rand.Rand
}

// NewFuzzer creates a new Fuzzer with the given seed
func NewFuzzer(seed int64) *Fuzzer {
	return &Fuzzer{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// FuzzSites generates hostile site identifiers
func (f *Fuzzer) FuzzSites() []string {
	return []string{
		// Boundary cases
		"a",
		strings.Repeat("s", 64),
		strings.Repeat("s", 65),

		// Query injection
		"stackoverflow&key=stolen",
		"stackoverflow?site=evil",
		"stackoverflow#fragment",
		"stackoverflow;evil",

		// Path traversal
		"../../etc/passwd",
		"/etc/passwd",
		"..\\windows",

		// Control characters and header injection
		"stack\noverflow",
		"stack\r\nX-Injected: 1",
		"stack\x00overflow",
		"stack\toverflow",

		// Unicode
		"stäckoverflow",
		"тест",
		"‮stackoverflow",
		"🚀",

		// Markup
		"<script>alert(1)</script>",
		"%2e%2e%2f",
	}
}

// FuzzIDs generates hostile positional arguments
func (f *Fuzzer) FuzzIDs() []string {
	return []string{
		"",
		"0",
		"-1",
		"99999999999999999999999",
		"1;2;3",
		"1/../../users",
		"1?site=evil",
		"1&site=evil",
		"1#fragment",
		"1%3Fsite%3Devil",
		"1 2",
		"1\n2",
	}
}

// RandomIDs returns n random numeric ids
func (f *Fuzzer) RandomIDs(n int) []any {
	ids := make([]any, n)
	for i := range ids {
		ids[i] = f.rnd.Intn(1 << 30)
	}
	return ids
}
