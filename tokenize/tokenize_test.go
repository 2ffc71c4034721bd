package tokenize

import (
	"reflect"
	"sync"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		text     string
		keepCase bool
		want     []string
	}{
		{"Hola, my friend!", true, []string{"Hola", ",", "my", "friend", "!"}},
		{"Hola, my friend!", false, []string{"hola", ",", "my", "friend", "!"}},
		{"¿Qué pasa?", true, []string{"¿", "Qué", "pasa", "?"}},
		{"it's 2016", true, []string{"it", "'", "s", "2016"}},
		{"   ", true, nil},
	}
	for _, tt := range tests {
		got := Split(tt.text, tt.keepCase)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q, %v) = %q, want %q", tt.text, tt.keepCase, got, tt.want)
		}
	}
}

func TestSplitComposesNFC(t *testing.T) {
	// "e" + combining acute accent must tokenize the same as precomposed "é".
	decomposed := Split("cafe\u0301", true)
	composed := Split("café", true)
	if !reflect.DeepEqual(decomposed, composed) {
		t.Errorf("decomposed %q != composed %q", decomposed, composed)
	}
}

func TestLower(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ÁRBOL", "árbol"},
		{"House", "house"},
		{"ya", "ya"},
		{"niño", "niño"},
		{"2016", "2016"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Lower(tt.in); got != tt.want {
			t.Errorf("Lower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLowerAlreadyLowerDoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		_ = Lower("mañana")
	})
	if allocs != 0 {
		t.Errorf("Lower on lower-case input allocated %v times, want 0", allocs)
	}
}

func TestLowerConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := Lower("La CASA"); got != "la casa" {
					t.Errorf("Lower = %q, want la casa", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		token string
		want  Kind
	}{
		{".", Punct},
		{"...", Punct},
		{"¿", Punct},
		{"'s", Word}, // ends in a letter
		{"2016", Numeral},
		{"٣", Numeral},
		{"hello", Word},
		{"a1", Word},
		{"", Word},
	}
	for _, tt := range tests {
		if got := KindOf(tt.token); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
