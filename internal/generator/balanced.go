package generator

import "svw.info/tenmatch/internal/domain"

const digits = 9

// Generate returns a new layout: each digit gets cells/9 slots, the
// remainder goes to digits 1..remainder, then the order is shuffled.
func (g *Balanced) Generate() domain.Grid {
	total := domain.Rows * domain.Cols
	per, rem := total/digits, total%digits

	numbers := make([]uint8, 0, total)
	for v := uint8(1); v <= digits; v++ {
		for i := 0; i < per; i++ {
			numbers = append(numbers, v)
		}
	}
	for v := uint8(1); int(v) <= rem; v++ {
		numbers = append(numbers, v)
	}
	g.rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	var out domain.Grid
	for i, v := range numbers {
		out[i/domain.Cols][i%domain.Cols] = v
	}
	return out
}
