package rowgen

import (
	"math/rand"
	"strconv"
)

// Limit is the exclusive upper bound of the generated numeric fields.
const Limit = 100.0

const keyPrefix = "K-"

// Row is one synthetic row of the Test table.
type Row struct {
	Key  string
	Num1 float64
	Num2 float64
	Num3 float64
	Num4 float64
}

// Generator derives synthetic rows on demand. The key for index i is fixed,
// so keys are pairwise distinct across a run; the numeric fields come from a
// single rand sequence seeded once per run and never reseeded.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Key returns the unique key for row index i.
func Key(i int) string {
	return keyPrefix + strconv.Itoa(i)
}

// Row derives the row for index i, consuming four values from the sequence.
func (g *Generator) Row(i int) Row {
	return Row{
		Key:  Key(i),
		Num1: g.float(),
		Num2: g.float(),
		Num3: g.float(),
		Num4: g.float(),
	}
}

func (g *Generator) float() float64 {
	return g.rng.Float64() * Limit
}
