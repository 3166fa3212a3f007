// Package synth produces human-readable field values (company names,
// product phrases, places, IP addresses) from an injected random source.
// It is pure: the same rand stream always yields the same sequence.
package synth

import (
	"fmt"
	"math/rand/v2"
)

// Synthesizer generates display text for catalog and session records.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer with the given random source.
func New(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

func (s *Synthesizer) pick(words []string) string {
	return words[s.rng.IntN(len(words))]
}

// CompanyName generates a company-style name like "Vertex Dynamics".
func (s *Synthesizer) CompanyName() string {
	return fmt.Sprintf("%s %s", s.pick(companyStems), s.pick(companySuffixes))
}

// BuzzPhrase generates a business buzz phrase used for subcategory names.
func (s *Synthesizer) BuzzPhrase() string {
	return fmt.Sprintf("%s %s %s", s.pick(buzzVerbs), s.pick(buzzAdjectives), s.pick(buzzNouns))
}

// CatchPhrase generates a title-cased product name.
func (s *Synthesizer) CatchPhrase() string {
	return fmt.Sprintf("%s %s %s", s.pick(phraseAdjectives), s.pick(phraseDescriptors), s.pick(phraseNouns))
}

// City generates a city name.
func (s *Synthesizer) City() string {
	return s.pick(cityNames)
}

// StateAbbr generates a two-letter state abbreviation.
func (s *Synthesizer) StateAbbr() string {
	return s.pick(stateAbbrs)
}

// CountryCode generates an ISO 3166-1 alpha-2 country code.
func (s *Synthesizer) CountryCode() string {
	return s.pick(countryCodes)
}

// IPv4 generates a dotted-quad address. First octet avoids 0 and 255.
func (s *Synthesizer) IPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		1+s.rng.IntN(254), s.rng.IntN(256), s.rng.IntN(256), s.rng.IntN(256))
}
