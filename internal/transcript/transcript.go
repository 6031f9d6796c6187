package transcript

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyTranscript indicates a transcript with no utterance entries, so
// there is no speaker to attribute laughter to.
var ErrEmptyTranscript = errors.New("transcript has no utterance entries")

// LaughterText is the annotation inserted for each detected laughter span.
const LaughterText = "[^ LAUGHTER ]"

// Entry is a single transcript record. The first entry of a transcript is a
// header sentinel whose fields carry channel metadata rather than utterance
// content.
type Entry struct {
	Speaker string
	Start   float64
	End     float64
	Text    string
}

// Transcript is an ordered list of entries. Index 0 is the header sentinel;
// entries from index 1 on are utterances sorted ascending by start time.
type Transcript []Entry

// Span is a time interval in seconds attributed to laughter.
type Span struct {
	Start float64
	End   float64
}

// MergeLaughter returns a new transcript with one laughter entry per span
// inserted. The speaker is copied from the first utterance entry. The header
// stays in place; all other entries are re-sorted ascending by start time,
// preserving the relative order of entries with equal start times. The input
// transcript is not modified.
func MergeLaughter(t Transcript, spans []Span) (Transcript, error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one utterance, got %d entries", ErrEmptyTranscript, len(t))
	}

	speaker := t[1].Speaker

	merged := make(Transcript, 0, len(t)+len(spans))
	merged = append(merged, t...)
	for _, span := range spans {
		merged = append(merged, Entry{
			Speaker: speaker,
			Start:   span.Start,
			End:     span.End,
			Text:    LaughterText,
		})
	}

	body := merged[1:]
	sort.SliceStable(body, func(i, j int) bool {
		return body[i].Start < body[j].Start
	})

	return merged, nil
}
