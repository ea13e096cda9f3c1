package engine

import (
	"errors"
	"math/rand/v2"
	"sort"

	"github.com/piwi3910/BlockPack/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           uint64 // Zero picks a fresh seed
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// chromosome is a candidate packing order: a permutation of block indices.
type chromosome struct {
	order    []int
	valid    bool // false when the order cannot be packed
	unplaced int
	bins     int
	eff      float64
}

// geneticSearch evolves block orders and scores each by packing it.
type geneticSearch struct {
	packer *Packer
	config GeneticConfig
	blocks []model.Block
	rng    *rand.Rand
}

func newGeneticSearch(packer *Packer, config GeneticConfig, blocks []model.Block) *geneticSearch {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &geneticSearch{
		packer: packer,
		config: config,
		blocks: blocks,
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// SearchOrder runs a genetic search over the order in which blocks are
// packed and returns the best packing found. The order given seeds the
// population and survives through elitism, so the result is never worse
// than packing the blocks as given. Orders are ranked by fewest unplaced
// blocks, then fewest bins, then highest efficiency.
func SearchOrder(settings model.PackSettings, blocks []model.Block, config GeneticConfig, opts ...Option) (model.PackResult, error) {
	if len(blocks) == 0 {
		return model.PackResult{}, ErrEmptyInput
	}
	for _, b := range blocks {
		if b.Width <= 0 || b.Height <= 0 {
			return model.PackResult{}, ErrInvalidBlock
		}
	}
	if config.PopulationSize < 1 {
		config.PopulationSize = 1
	}
	if config.EliteCount < 1 {
		config.EliteCount = 1
	}
	if config.TournamentSize < 1 {
		config.TournamentSize = 1
	}

	o := buildOptions(opts)
	// Candidate packs run silently; only the final result is logged.
	g := newGeneticSearch(New(settings), config, blocks)

	population := g.initPopulation()
	for i := range population {
		if err := g.evaluate(&population[i]); err != nil {
			return model.PackResult{}, err
		}
	}

	for gen := 0; gen < config.Generations; gen++ {
		sortPopulation(population)

		next := make([]chromosome, 0, config.PopulationSize)
		elite := min(config.EliteCount, len(population))
		for i := 0; i < elite; i++ {
			next = append(next, copyChromosome(population[i]))
		}

		for len(next) < config.PopulationSize {
			child := g.orderCrossover(g.tournamentSelect(population), g.tournamentSelect(population))
			g.mutate(&child)
			if err := g.evaluate(&child); err != nil {
				return model.PackResult{}, err
			}
			next = append(next, child)
		}
		population = next
	}

	sortPopulation(population)
	best := population[0]
	if !best.valid {
		return model.PackResult{}, ErrUnsatisfiableGrowth
	}

	result, err := New(settings, opts...).Pack(g.ordered(best))
	if err != nil {
		return model.PackResult{}, err
	}
	o.logger.Debug("order search finished", "generations", config.Generations,
		"population", config.PopulationSize, "bins", best.bins, "unplaced", best.unplaced, "efficiency", best.eff)
	return result, nil
}

// initPopulation creates random orders plus the order given at index 0.
func (g *geneticSearch) initPopulation() []chromosome {
	n := len(g.blocks)
	population := make([]chromosome, g.config.PopulationSize)

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	population[0] = chromosome{order: identity}

	for i := 1; i < len(population); i++ {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}
	return population
}

func (g *geneticSearch) ordered(c chromosome) []model.Block {
	out := make([]model.Block, len(c.order))
	for i, idx := range c.order {
		out[i] = g.blocks[idx]
	}
	return out
}

// evaluate packs the chromosome's order and records its score. Orders that
// the growing packer cannot satisfy are marked invalid; any other error
// aborts the search.
func (g *geneticSearch) evaluate(c *chromosome) error {
	result, err := g.packer.Pack(g.ordered(*c))
	if errors.Is(err, ErrUnsatisfiableGrowth) {
		c.valid = false
		return nil
	}
	if err != nil {
		return err
	}
	c.valid = true
	c.unplaced = len(result.Unplaced)
	c.bins = result.BinCount()
	c.eff = result.TotalEfficiency()
	return nil
}

// fitter reports whether a ranks strictly above b.
func fitter(a, b chromosome) bool {
	if a.valid != b.valid {
		return a.valid
	}
	if a.unplaced != b.unplaced {
		return a.unplaced < b.unplaced
	}
	if a.bins != b.bins {
		return a.bins < b.bins
	}
	return a.eff > b.eff
}

// sortPopulation orders best first. Equal chromosomes keep their relative
// order, so the elite carried over from earlier generations stays ahead.
func sortPopulation(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return fitter(population[i], population[j])
	})
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticSearch) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.IntN(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.IntN(len(population))]
		if fitter(candidate, best) {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticSearch) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := g.rng.IntN(n)
	point2 := g.rng.IntN(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	// Copy segment from parent1
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *geneticSearch) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.IntN(n)
		j := g.rng.IntN(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion mutation: reverse a segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.IntN(n)
		j := g.rng.IntN(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	c.order = order
	return c
}
