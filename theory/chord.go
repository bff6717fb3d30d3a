package theory

import "fmt"

type (
	Quality int

	// Chord is a tokenized chord symbol.
	Chord struct {
		Symbol  string
		Root    PitchClass
		Quality Quality
		// Raw quality token as written after the root, ie: "m7(b5)".
		Token string
	}

	// ChordInfo holds the spelled tones of a chord.
	ChordInfo struct {
		Symbol string
		Root   string
		Third  string
		Fifth  string
		// Seventh (or sixth) of the chord. Empty for triads.
		Seventh string
		// Spelled tones, ordered root, third, fifth, seventh.
		Tones []string
		// Degree labels matching Tones, ie: {"R", "b3", "5", "b7"}.
		Degrees []string
	}

	// Tone is a spelled chord tone with its degree label.
	Tone struct {
		Note   string
		Degree string
	}

	// UnknownRootError is returned when a chord symbol does not start with a known note.
	UnknownRootError struct {
		Symbol string
		Root   string
	}
)

const (
	// Triad is the fallback for any quality token not listed below.
	Triad Quality = iota
	Minor7
	Dominant7
	Major7
	HalfDiminished7
	Minor6
	Major6
	Diminished7
)

var qualities = []struct {
	quality   Quality
	token     string
	intervals []int
	degrees   []string
}{
	{Triad, "", []int{0, 4, 7}, []string{"R", "3", "5"}},
	{Minor7, "m7", []int{0, 3, 7, 10}, []string{"R", "b3", "5", "b7"}},
	{Dominant7, "7", []int{0, 4, 7, 10}, []string{"R", "3", "5", "b7"}},
	{Major7, "maj7", []int{0, 4, 7, 11}, []string{"R", "3", "5", "7"}},
	{HalfDiminished7, "m7(b5)", []int{0, 3, 6, 10}, []string{"R", "b3", "b5", "b7"}},
	{Minor6, "m6", []int{0, 3, 7, 9}, []string{"R", "b3", "5", "6"}},
	{Major6, "6", []int{0, 4, 7, 9}, []string{"R", "3", "5", "6"}},
	{Diminished7, "dim7", []int{0, 3, 6, 9}, []string{"R", "b3", "b5", "bb7"}},
}

func (e UnknownRootError) Error() string {
	return fmt.Sprintf("unknown root note %q in chord %q", e.Root, e.Symbol)
}

// ParseQuality matches a quality token literally. Unmatched tokens fall back to Triad.
func ParseQuality(token string) Quality {
	for _, q := range qualities {
		if q.token == token {
			return q.quality
		}
	}
	return Triad
}

func (q Quality) String() string {
	return qualities[q].token
}

// Intervals returns the semitone offsets from the root, ordered root, third, fifth, seventh.
func (q Quality) Intervals() []int {
	return append([]int(nil), qualities[q].intervals...)
}

// Degrees returns the degree labels matching Intervals.
func (q Quality) Degrees() []string {
	return append([]string(nil), qualities[q].degrees...)
}

// Parse splits a chord symbol into its root and quality.
// The root is the first character plus a following "b" or "#".
func Parse(symbol string) (Chord, error) {
	rootLen := 1
	if len(symbol) > 1 && (symbol[1] == 'b' || symbol[1] == '#') {
		rootLen = 2
	}
	if len(symbol) < rootLen {
		return Chord{}, UnknownRootError{Symbol: symbol}
	}

	root, token := symbol[:rootLen], symbol[rootLen:]
	pc, ok := ParseNote(root)
	if !ok {
		return Chord{}, UnknownRootError{Symbol: symbol, Root: root}
	}

	return Chord{
		Symbol:  symbol,
		Root:    pc,
		Quality: ParseQuality(token),
		Token:   token,
	}, nil
}

// Resolve parses a chord symbol and spells its tones using flats.
func Resolve(symbol string) (ChordInfo, error) {
	c, err := Parse(symbol)
	if err != nil {
		return ChordInfo{}, err
	}
	return c.Info(), nil
}

// Info spells the tones of the chord.
func (c Chord) Info() ChordInfo {
	intervals := c.Quality.Intervals()
	tones := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		tones = append(tones, c.Root.Transpose(iv).Flat())
	}

	info := ChordInfo{
		Symbol:  c.Symbol,
		Root:    tones[0],
		Third:   tones[1],
		Fifth:   tones[2],
		Tones:   tones,
		Degrees: c.Quality.Degrees(),
	}
	if len(tones) > 3 {
		info.Seventh = tones[3]
	}
	return info
}

// GuideTones returns the third and the seventh (or sixth). Triads only have a third.
func (ci ChordInfo) GuideTones() []Tone {
	guides := []Tone{{Note: ci.Third, Degree: ci.Degrees[1]}}
	if ci.Seventh != "" {
		guides = append(guides, Tone{Note: ci.Seventh, Degree: ci.Degrees[3]})
	}
	return guides
}

// Voicing returns the chord as a block voicing in the given octave: root, third, fifth,
// and the seventh or, for triads, the root doubled.
func (ci ChordInfo) Voicing(oct octave) []string {
	top := ci.Seventh
	if top == "" {
		top = ci.Root
	}
	notes := []string{ci.Root, ci.Third, ci.Fifth, top}
	for i, n := range notes {
		notes[i] = WithOctave(n, oct)
	}
	return notes
}
