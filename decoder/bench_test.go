package decoder

import (
	"math/rand"
	"testing"

	"github.com/ieee0824/codeswitch-go/transition"
)

func BenchmarkDecode(b *testing.B) {
	bank := buildBank(b)
	vocab := []string{"the", "house", "es", "muy", "bonita", "and", "perro", "casa", "dog", "with"}
	rng := rand.New(rand.NewSource(42))

	gold := make([]string, 2000)
	words := make([]string, 1000)
	for i := range gold {
		if rng.Intn(4) == 0 {
			gold[i] = "Spn"
		} else {
			gold[i] = "Eng"
		}
	}
	for i := range words {
		words[i] = vocab[rng.Intn(len(vocab))]
	}
	tm, err := transition.Build(gold, []string{"Eng", "Spn"})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(words, bank, tm); err != nil {
			b.Fatal(err)
		}
	}
}
