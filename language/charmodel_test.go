package language

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNGrams(t *testing.T) {
	got := NGrams("ab", 3)
	want := []string{"  a", " ab", "ab ", "b  "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NGrams(ab, 3) = %q, want %q", got, want)
	}
}

// Training list ["aa","aa","ab"], n=2, A=2. Padded with one boundary per side,
// the "a" context is followed by a (2x), b (1x) and the boundary (2x).
func TestNGramProbSmallCorpus(t *testing.T) {
	m, err := Build("X", []string{"aa", "aa", "ab"}, 2, 2)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if got := m.Count("a", 'a'); got != 2 {
		t.Errorf("Count(a, a) = %d, want 2", got)
	}
	if got := m.Count("a", 'b'); got != 1 {
		t.Errorf("Count(a, b) = %d, want 1", got)
	}
	if got := m.Count("a", Boundary); got != 2 {
		t.Errorf("Count(a, boundary) = %d, want 2", got)
	}

	tests := []struct {
		ctx  string
		c    rune
		want float64
	}{
		{"a", 'a', (2.0 + 1) / (5 + 2)},
		{"a", 'b', (1.0 + 1) / (5 + 2)},
		{"a", Boundary, (2.0 + 1) / (5 + 2)},
		{" ", 'a', (3.0 + 1) / (3 + 2)},
		{"b", Boundary, (1.0 + 1) / (1 + 2)},
	}
	for _, tt := range tests {
		got := m.NGramProb(tt.ctx, tt.c)
		if math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("NGramProb(%q, %q) = %f, want %f", tt.ctx, tt.c, got, tt.want)
		}
	}
}

func TestNGramProbUnseen(t *testing.T) {
	m, err := Build("X", []string{"aa", "ab"}, 2, 26)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	want := 1.0 / 26
	if got := m.NGramProb("z", 'q'); got != want {
		t.Errorf("unseen context: NGramProb = %v, want exactly %v", got, want)
	}
	if got := m.NGramProb("a", 'q'); got != want {
		t.Errorf("unseen successor: NGramProb = %v, want exactly %v", got, want)
	}
}

func TestNGramProbInUnitInterval(t *testing.T) {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog", "el", "perro"}
	for _, n := range []int{2, 3, 5} {
		m, err := Build("X", words, n, 26)
		if err != nil {
			t.Fatalf("Build(n=%d) error: %v", n, err)
		}
		for ctx, next := range m.probs {
			for c, p := range next {
				if p <= 0 || p > 1 {
					t.Errorf("n=%d: P(%q|%q) = %f, want (0,1]", n, c, ctx, p)
				}
				if got := m.NGramProb(ctx, c); got != p {
					t.Errorf("n=%d: NGramProb(%q, %q) = %f, want stored %f", n, ctx, c, got, p)
				}
			}
		}
	}
}

func TestWordLogProb(t *testing.T) {
	m, err := Build("X", []string{"aa", "aa", "ab"}, 2, 2)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	// " a", "ab", "b "
	want := math.Log(4.0/5) + math.Log(2.0/7) + math.Log(2.0/3)
	if got := m.WordLogProb("ab"); math.Abs(got-want) > 1e-10 {
		t.Errorf("WordLogProb(ab) = %f, want %f", got, want)
	}
}

func TestWordLogProbLongWordIsFinite(t *testing.T) {
	m, err := Build("X", []string{"abc"}, 3, 26)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	long := make([]rune, 5000)
	for i := range long {
		long[i] = 'z'
	}
	lp := m.WordLogProb(string(long))
	if math.IsInf(lp, 0) || math.IsNaN(lp) {
		t.Errorf("WordLogProb(long) = %f, want finite", lp)
	}
	if lp >= -1000 {
		t.Errorf("WordLogProb(long) = %f, want very negative", lp)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build("X", nil, 3, 26); !errors.Is(err, ErrEmptyTrainingData) {
		t.Errorf("Build(nil) error = %v, want ErrEmptyTrainingData", err)
	}
	if _, err := Build("X", []string{"", ""}, 3, 26); !errors.Is(err, ErrEmptyTrainingData) {
		t.Errorf("Build(empty words) error = %v, want ErrEmptyTrainingData", err)
	}
	if _, err := Build("X", []string{"a"}, 1, 26); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Build(order=1) error = %v, want ErrInvalidModel", err)
	}
	if _, err := Build("X", []string{"a"}, 2, 0); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Build(alphabet=0) error = %v, want ErrInvalidModel", err)
	}
}

func TestBuilderCountsWords(t *testing.T) {
	b, err := NewBuilder("X", 3, 26)
	if err != nil {
		t.Fatalf("NewBuilder error: %v", err)
	}
	for _, w := range []string{"uno", "", "dos"} {
		b.AddWord(w)
	}
	if b.Words() != 2 {
		t.Errorf("Words() = %d, want 2", b.Words())
	}
	m, err := b.Model()
	if err != nil {
		t.Fatalf("Model error: %v", err)
	}
	if m.Language() != "X" || m.Order() != 3 || m.AlphabetSize() != 26 {
		t.Errorf("model = (%s, %d, %d), want (X, 3, 26)", m.Language(), m.Order(), m.AlphabetSize())
	}
	if m.Contexts() == 0 {
		t.Error("Contexts() = 0, want > 0")
	}
}
