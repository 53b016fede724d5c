package score

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const idealPrompt = "Explain the history of jazz for a curious teenager, covering key artists, styles, and major recordings."

// --- Weight tests ---

func TestWeightsSumTo100(t *testing.T) {
	if got := TotalWeight(); got != 100 {
		t.Fatalf("TotalWeight() = %d, want 100", got)
	}
	if err := ValidateWeights(); err != nil {
		t.Fatal(err)
	}
}

func TestDimensionValid(t *testing.T) {
	for _, d := range Dimensions() {
		if !d.Valid() {
			t.Errorf("expected %q to be valid", d)
		}
		if d.Weight() <= 0 {
			t.Errorf("%q has no weight", d)
		}
	}
	if Dimension("tone").Valid() {
		t.Error("expected tone to be invalid")
	}
}

// --- Score tests ---

func TestScoreEmpty(t *testing.T) {
	got := Score("")
	want := Result{
		Score: 45,
		Breakdown: Breakdown{
			DimensionLength:      25,
			DimensionClarity:     15,
			DimensionSpecificity: 15,
			DimensionVagueness:   0,
			DimensionDuplication: 0,
			DimensionVariety:     0,
		},
		Tips: []string{
			tipText(DimensionLength, 0),
			tipText(DimensionClarity, 0),
			tipText(DimensionSpecificity, 0),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Score(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		score int
		want  Breakdown
	}{
		{
			name:  "ideal",
			text:  idealPrompt,
			score: 100,
			want:  Breakdown{},
		},
		{
			name:  "vague whole word",
			text:  "This is a good plan for beginners to study daily",
			score: 58,
			want:  Breakdown{DimensionLength: 12, DimensionClarity: 15, DimensionVagueness: 15},
		},
		{
			name:  "vague word inside longer word",
			text:  "This is a goodbye plan for beginners to study daily",
			score: 85,
			want:  Breakdown{DimensionClarity: 15},
		},
		{
			name:  "adjacent duplicate",
			text:  "Please please explain this clearly for a beginner.",
			score: 90,
			want:  Breakdown{DimensionDuplication: 10},
		},
		{
			name:  "everything wrong",
			text:  "cool cool cool",
			score: 0,
			want: Breakdown{
				DimensionLength:      25,
				DimensionClarity:     15,
				DimensionSpecificity: 15,
				DimensionVagueness:   15,
				DimensionDuplication: 10,
				DimensionVariety:     20,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.text)
			if got.Score != tt.score {
				t.Errorf("Score() = %d, want %d", got.Score, tt.score)
			}
			for _, d := range Dimensions() {
				if got.Breakdown[d] != tt.want[d] {
					t.Errorf("%s penalty = %d, want %d", d, got.Breakdown[d], tt.want[d])
				}
			}
		})
	}
}

func TestScoreDuplicateRemoved(t *testing.T) {
	got := Score("Please explain this clearly for a beginner.")
	if got.Breakdown[DimensionDuplication] != 0 {
		t.Errorf("duplication penalty = %d, want 0", got.Breakdown[DimensionDuplication])
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	if p := Score("GOOD").Breakdown[DimensionVagueness]; p != 15 {
		t.Errorf("GOOD vagueness = %d, want 15", p)
	}
	if p := Score("EXPLAIN jazz").Breakdown[DimensionClarity]; p != 0 {
		t.Errorf("EXPLAIN clarity = %d, want 0", p)
	}
	if p := Score("Very VERY").Breakdown[DimensionDuplication]; p != 10 {
		t.Errorf("Very VERY duplication = %d, want 10", p)
	}
	if p := Score("Output as JSON").Breakdown[DimensionSpecificity]; p != 0 {
		t.Errorf("JSON specificity = %d, want 0", p)
	}
}

func TestClaritySignals(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"what is jazz?", 0},
		{"jazz history.", 0},
		{"summarize jazz history", 0},
		{"list jazz albums", 0},
		{"listing jazz albums", 15},
		{"jazz history", 15},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Score(tt.text).Breakdown[DimensionClarity]; got != tt.want {
				t.Errorf("clarity penalty = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpecificityPhrases(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"send this to a friend", 0},
		{"send this to   an editor", 0},
		{"write it as a poem", 0},
		{"paint it in the style of Monet", 0},
		{"put it in a table", 0},
		{"buy a tablet", 15},
		{"send this to, a friend", 15},
		{"send this to him", 15},
		{"forward it", 15},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Score(tt.text).Breakdown[DimensionSpecificity]; got != tt.want {
				t.Errorf("specificity penalty = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDuplicationNeedsWhitespaceOnly(t *testing.T) {
	if p := Score("very, very").Breakdown[DimensionDuplication]; p != 0 {
		t.Errorf("punctuated repeat penalty = %d, want 0", p)
	}
	if p := Score("very\n\tvery").Breakdown[DimensionDuplication]; p != 10 {
		t.Errorf("whitespace repeat penalty = %d, want 10", p)
	}
	if p := Score("the theme").Breakdown[DimensionDuplication]; p != 0 {
		t.Errorf("prefix repeat penalty = %d, want 0", p)
	}
}

func TestVarietyBands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"all distinct", "one two three four five", 0},
		{"exactly 0.8", "one two three four one", 0},
		{"0.6", "one two three one two", 10},
		{"exactly 0.5", "one two one two", 10},
		{"0.4", "cats dogs cats dogs cats", 20},
		{"no tokens", "?!  ...", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text).Breakdown[DimensionVariety]; got != tt.want {
				t.Errorf("variety penalty = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLengthPenalty(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 25},
		{19, 25},
		{20, 12},
		{49, 12},
		{50, 0},
		{250, 0},
		{251, 12},
		{500, 12},
		{501, 25},
	}
	for _, tt := range tests {
		if got := lengthPenalty(tt.n); got != tt.want {
			t.Errorf("lengthPenalty(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestLengthCountsRunes(t *testing.T) {
	// 20 runes, 40 bytes.
	text := strings.Repeat("é", 20)
	if got := Score(text).Breakdown[DimensionLength]; got != 12 {
		t.Errorf("length penalty = %d, want 12", got)
	}
}

func TestScoreMonotonicTowardIdealBand(t *testing.T) {
	texts := []string{
		"List for x",
		"List five jazz albums for me",
		idealPrompt,
	}
	prev := -1
	for _, text := range texts {
		s := Score(text).Score
		if s < prev {
			t.Errorf("score(%q) = %d, lower than previous %d", text, s, prev)
		}
		prev = s
	}
	if got := Score(texts[0]).Breakdown[DimensionLength]; got != 25 {
		t.Errorf("short text length penalty = %d, want 25", got)
	}
}

func TestScoreBounds(t *testing.T) {
	inputs := []string{
		"",
		"a",
		strings.Repeat("word ", 2000),
		strings.Repeat("x", 10000),
		strings.Repeat("good good ", 1000),
	}
	for _, in := range inputs {
		got := Score(in)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("score %d out of range for input of %d bytes", got.Score, len(in))
		}
		for d, p := range got.Breakdown {
			if p < 0 || p > d.Weight() {
				t.Errorf("%s penalty %d outside [0,%d]", d, p, d.Weight())
			}
		}
		if len(got.Tips) > 3 {
			t.Errorf("got %d tips, want at most 3", len(got.Tips))
		}
	}
}

func TestScoreIdempotentAndConcurrent(t *testing.T) {
	texts := []string{"", idealPrompt, "cool cool cool", "Please please explain this clearly for a beginner."}
	want := make([]Result, len(texts))
	for i, text := range texts {
		want[i] = Score(text)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, text := range texts {
				if got := Score(text); !reflect.DeepEqual(got, want[i]) {
					t.Errorf("Score(%q) not deterministic", text)
				}
			}
		}()
	}
	wg.Wait()
}

// --- Tip tests ---

func TestTipsOrderedByLossThenDimension(t *testing.T) {
	got := Score("cool cool cool").Tips
	want := []string{
		tipText(DimensionLength, 14),
		tipText(DimensionVariety, 14),
		tipText(DimensionClarity, 14),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tips mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTipsFullOrder(t *testing.T) {
	b := Score("cool cool cool").Breakdown
	tips := RankTips(b, 14)
	var got []Dimension
	for _, tip := range tips {
		got = append(got, tip.Dimension)
	}
	want := []Dimension{
		DimensionLength, DimensionVariety, DimensionClarity,
		DimensionSpecificity, DimensionVagueness, DimensionDuplication,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rank mismatch (-want +got):\n%s", diff)
	}
}

func TestTipsEmptyWhenPerfect(t *testing.T) {
	got := Score(idealPrompt)
	if got.Tips == nil || len(got.Tips) != 0 {
		t.Errorf("expected empty non-nil tips, got %#v", got.Tips)
	}
}

func TestLengthTipSide(t *testing.T) {
	long := Score(strings.Repeat("Explain jazz for me. ", 20))
	found := false
	for _, tip := range long.Tips {
		if strings.HasPrefix(tip, "Too long") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a too-long tip, got %v", long.Tips)
	}
	short := Score("Explain jazz.")
	if len(short.Tips) == 0 || !strings.HasPrefix(short.Tips[0], "Too short") {
		t.Errorf("expected too-short tip first, got %v", short.Tips)
	}
}

func TestTruncate(t *testing.T) {
	tips := make([]Tip, 5)
	Truncate(&tips, 0)
	if len(tips) != 3 {
		t.Errorf("expected 3 tips after default truncation, got %d", len(tips))
	}
	Truncate(&tips, 10)
	if len(tips) != 3 {
		t.Errorf("truncation above length changed slice to %d", len(tips))
	}
}
