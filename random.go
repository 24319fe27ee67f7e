package gridastar

import "math/rand/v2"

const (
	LabelObstacle    = "Obstacle"
	LabelNonObstacle = "Non Obstacle"
)

// Weighted is one row of a weighted decision table.
type Weighted struct {
	Label  string
	Weight int
}

// DefaultObstacleWeights keeps roughly 30% of scattered cells blocked.
var DefaultObstacleWeights = []Weighted{
	{Label: LabelObstacle, Weight: 30},
	{Label: LabelNonObstacle, Weight: 70},
}

// ObstacleSource returns one label per call, weighted by the table.
type ObstacleSource interface {
	Pick(table []Weighted) string
}

// WeightedPicker is an ObstacleSource backed by a math/rand/v2 generator.
type WeightedPicker struct {
	rng *rand.Rand
}

// NewWeightedPicker uses rng, or a randomly seeded generator when rng is nil.
func NewWeightedPicker(rng *rand.Rand) *WeightedPicker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &WeightedPicker{rng: rng}
}

// Pick draws a label with probability weight/total. Rows with a non-positive
// weight are never drawn; an empty or all-zero table yields "".
func (p *WeightedPicker) Pick(table []Weighted) string {
	total := 0
	for _, row := range table {
		if row.Weight > 0 {
			total += row.Weight
		}
	}
	if total == 0 {
		return ""
	}

	threshold := p.rng.IntN(total)
	running := 0
	for _, row := range table {
		if row.Weight <= 0 {
			continue
		}
		running += row.Weight
		if threshold < running {
			return row.Label
		}
	}
	return ""
}
