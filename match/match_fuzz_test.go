package match

// Fuzz patterns and inputs.  Match and then verify invariants of
// non-negative results.

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
)

// Fuzz has parameters used to generate random patterns and inputs.
type Fuzz struct {
	Alphabet []string
	MaxLen   int
	Singles  float64
	Multis   float64
	Literals float64

	// generated counts the number of tokens generated.
	generated int64
}

// NewFuzz returns a reasonable, general-purpose Fuzz.
//
// The alphabet is tiny so that literal collisions (and therefore
// matches) actually happen.
func NewFuzz() *Fuzz {
	return &Fuzz{
		Alphabet: []string{"a", "b", "c"},
		MaxLen:   6,
		Singles:  1,
		Multis:   1,
		Literals: 4,
	}
}

// NoWildcards sets Singles and Multis to zero so that generated
// sequences contain only literals (and can be used as inputs).
func (f *Fuzz) NoWildcards() {
	f.Singles = 0
	f.Multis = 0
}

// Gen generates a random pattern or input sequence.
func (f *Fuzz) Gen(r *rand.Rand) []string {
	n := r.Intn(f.MaxLen + 1)
	acc := make([]string, n)
	m := f.Singles + f.Multis + f.Literals
	for i := range acc {
		f.generated++
		switch t := r.Float64() * m; {
		case t < f.Singles:
			acc[i] = Single
		case t < f.Singles+f.Multis:
			acc[i] = Multi
		default:
			acc[i] = f.Alphabet[r.Intn(len(f.Alphabet))]
		}
	}
	return acc
}

// TestMatchFuzz matches a bunch of patterns against a bunch of
// inputs and verifies some of the results.
func TestMatchFuzz(t *testing.T) {
	var (
		pats      = 2000
		insPerPat = 200
		r         = rand.New(rand.NewSource(42))
		p         = NewFuzz()
		in        = NewFuzz()

		matched   = 0
		attempted = 0
	)
	in.NoWildcards()

	then := time.Now()
	for i := 0; i < pats; i++ {
		pat := Pattern(p.Gen(r))
		k := DefaultMatcher.Wildcards(pat)
		for j := 0; j < insPerPat; j++ {
			input := in.Gen(r)
			attempted++
			caps, ok := Match(pat, input)
			if !ok {
				if k == len(pat) && k == 0 && len(input) == 0 {
					t.Fatalf("empty pattern must match empty input")
				}
				continue
			}
			matched++

			if len(caps) != k {
				t.Fatalf("pattern %#v on %#v: %d captures, wanted %d",
					pat, input, len(caps), k)
			}

			// Substituting the captures back into the
			// pattern reproduces the input.
			subst := make([]string, 0, len(input))
			ci := 0
			for _, elt := range pat {
				switch {
				case DefaultMatcher.IsSingle(elt):
					subst = append(subst, caps[ci])
					ci++
				case DefaultMatcher.IsMulti(elt):
					if caps[ci] != "" {
						subst = append(subst, strings.Fields(caps[ci])...)
					}
					ci++
				default:
					subst = append(subst, elt)
				}
			}
			if strings.Join(subst, " ") != strings.Join(input, " ") {
				t.Fatalf("pattern %#v on %#v: substitution gave %#v",
					pat, input, subst)
			}

			// A pattern with no wildcards only matches itself.
			if k == 0 && strings.Join(pat, " ") != strings.Join(input, " ") {
				t.Fatalf("wildcard-free pattern %#v matched %#v", pat, input)
			}
		}
	}
	elapsed := time.Now().Sub(then)

	fmt.Printf(`fuzzed    %d
matched   %f%%
elapsed   %fms
generated %d
`,
		attempted,
		100*float64(matched)/float64(attempted),
		elapsed.Seconds()*1000,
		p.generated+in.generated)
}
