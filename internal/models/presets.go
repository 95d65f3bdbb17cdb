package models

// BlindStructure is a named blind schedule
type BlindStructure struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description"`
	BlindLevels []BlindLevel `json:"blindLevels" yaml:"blind_levels"`
}

// PrizePosition is the share of the prize pool paid to one finishing position
type PrizePosition struct {
	Position    int `json:"position" yaml:"position"`
	BasisPoints int `json:"basisPoints" yaml:"basis_points"` // 10000 = 100%
}

// PrizeStructure describes how the prize pool is split
type PrizeStructure struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Positions   []PrizePosition `json:"positions" yaml:"positions"`
}

// PaidPositions returns how many finishing positions receive a prize.
func (p PrizeStructure) PaidPositions() int {
	return len(p.Positions)
}

// schedule numbers levels from 1. Each row is {small blind, ante}; the big
// blind is always twice the small blind.
func schedule(seconds int, rows [][2]int) []BlindLevel {
	levels := make([]BlindLevel, len(rows))
	for i, row := range rows {
		levels[i] = BlindLevel{
			Level:      i + 1,
			SmallBlind: row[0],
			BigBlind:   row[0] * 2,
			Ante:       row[1],
			Duration:   seconds,
		}
	}
	return levels
}

var (
	TurboStructure = BlindStructure{
		Name:        "Turbo",
		Description: "Fast-paced tournament with 5-minute blind levels",
		BlindLevels: schedule(300, [][2]int{
			{10, 0},
			{15, 0},
			{25, 0},
			{50, 10},
			{75, 15},
			{100, 20},
			{150, 30},
			{200, 40},
			{300, 60},
			{400, 80},
			{600, 120},
			{800, 160},
			{1000, 200},
			{1500, 300},
			{2000, 400},
		}),
	}

	// DemoStructure is short enough to play through against the simulator.
	DemoStructure = BlindStructure{
		Name:        "Demo",
		Description: "One-minute blind levels for local testing",
		BlindLevels: schedule(60, [][2]int{
			{10, 0},
			{20, 0},
			{30, 5},
			{50, 10},
			{100, 25},
			{200, 50},
		}),
	}

	StandardStructure = BlindStructure{
		Name:        "Standard",
		Description: "Standard tournament with 10-minute blind levels",
		BlindLevels: schedule(600, [][2]int{
			{25, 0},
			{50, 0},
			{75, 0},
			{100, 25},
			{150, 30},
			{200, 50},
			{300, 75},
			{400, 100},
			{600, 150},
			{800, 200},
			{1000, 250},
			{1500, 375},
			{2000, 500},
			{3000, 750},
			{4000, 1000},
			{6000, 1500},
			{8000, 2000},
			{10000, 2500},
		}),
	}

	DeepStackStructure = BlindStructure{
		Name:        "Deep Stack",
		Description: "Deep stack tournament with 15-minute blind levels",
		BlindLevels: schedule(900, [][2]int{
			{25, 0},
			{50, 0},
			{75, 0},
			{100, 0},
			{150, 25},
			{200, 50},
			{250, 50},
			{300, 75},
			{400, 100},
			{500, 100},
			{600, 150},
			{800, 200},
			{1000, 250},
			{1500, 300},
			{2000, 500},
			{3000, 600},
			{4000, 1000},
			{5000, 1000},
			{6000, 1500},
			{8000, 2000},
		}),
	}

	HyperTurboStructure = BlindStructure{
		Name:        "Hyper Turbo",
		Description: "Lightning-fast tournament with 3-minute blind levels",
		BlindLevels: schedule(180, [][2]int{
			{10, 0},
			{15, 0},
			{25, 5},
			{50, 10},
			{75, 15},
			{100, 25},
			{150, 40},
			{200, 50},
			{300, 75},
			{500, 100},
			{750, 150},
			{1000, 250},
		}),
	}
)

var (
	// WinnerTakesAll pays the whole pool to the winner.
	WinnerTakesAll = PrizeStructure{
		Name:        "Winner Takes All",
		Description: "Single winner receives entire prize pool",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 10000},
		},
	}

	// Top3Payout pays 50/30/20.
	Top3Payout = PrizeStructure{
		Name:        "Top 3",
		Description: "Prize distribution for top 3 finishers",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 5000},
			{Position: 2, BasisPoints: 3000},
			{Position: 3, BasisPoints: 2000},
		},
	}

	Top5Payout = PrizeStructure{
		Name:        "Top 5",
		Description: "Prize distribution for top 5 finishers",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 4000},
			{Position: 2, BasisPoints: 2500},
			{Position: 3, BasisPoints: 1700},
			{Position: 4, BasisPoints: 1100},
			{Position: 5, BasisPoints: 700},
		},
	}

	Top10Payout = PrizeStructure{
		Name:        "Top 10",
		Description: "Prize distribution for top 10 finishers",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 3000},
			{Position: 2, BasisPoints: 2000},
			{Position: 3, BasisPoints: 1300},
			{Position: 4, BasisPoints: 1000},
			{Position: 5, BasisPoints: 800},
			{Position: 6, BasisPoints: 600},
			{Position: 7, BasisPoints: 500},
			{Position: 8, BasisPoints: 400},
			{Position: 9, BasisPoints: 250},
			{Position: 10, BasisPoints: 150},
		},
	}

	// Top10PercentPayout leaves 550 basis points unassigned; they go to the
	// winner as rounding remainder does.
	Top10PercentPayout = PrizeStructure{
		Name:        "Top 10% (WSOP Style)",
		Description: "Pays top 10% of field with standard WSOP structure",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 3000},
			{Position: 2, BasisPoints: 1800},
			{Position: 3, BasisPoints: 1200},
			{Position: 4, BasisPoints: 900},
			{Position: 5, BasisPoints: 700},
			{Position: 6, BasisPoints: 550},
			{Position: 7, BasisPoints: 450},
			{Position: 8, BasisPoints: 350},
			{Position: 9, BasisPoints: 280},
			{Position: 10, BasisPoints: 220},
		},
	}

	HeadsUpPayout = PrizeStructure{
		Name:        "Heads-Up (65/35)",
		Description: "Standard heads-up tournament payout",
		Positions: []PrizePosition{
			{Position: 1, BasisPoints: 6500},
			{Position: 2, BasisPoints: 3500},
		},
	}
)

// DefaultBlindLevels is the schedule used when a tournament does not pick one.
var DefaultBlindLevels = StandardStructure.BlindLevels

// StructurePresets maps preset names to blind structures
var StructurePresets = map[string]BlindStructure{
	"turbo":       TurboStructure,
	"standard":    StandardStructure,
	"deep_stack":  DeepStackStructure,
	"hyper_turbo": HyperTurboStructure,
	"demo":        DemoStructure,
}

// PrizeStructurePresets maps preset names to prize structures
var PrizeStructurePresets = map[string]PrizeStructure{
	"winner_takes_all": WinnerTakesAll,
	"top_3":            Top3Payout,
	"top_5":            Top5Payout,
	"top_10":           Top10Payout,
	"top_10_percent":   Top10PercentPayout,
	"heads_up":         HeadsUpPayout,
}

func GetStructurePreset(name string) (BlindStructure, bool) {
	preset, exists := StructurePresets[name]
	return preset, exists
}

func GetPrizeStructurePreset(name string) (PrizeStructure, bool) {
	preset, exists := PrizeStructurePresets[name]
	return preset, exists
}

// ValidateStructure checks a blind schedule is usable: positive blinds and
// durations, non-negative antes, strictly increasing big blinds.
func ValidateStructure(structure BlindStructure) error {
	if len(structure.BlindLevels) == 0 {
		return ErrEmptyBlindStructure
	}

	for i, level := range structure.BlindLevels {
		if level.SmallBlind <= 0 || level.BigBlind <= 0 {
			return ErrInvalidBlindAmounts
		}
		if level.BigBlind <= level.SmallBlind {
			return ErrBigBlindTooSmall
		}
		if level.Duration <= 0 {
			return ErrInvalidLevelDuration
		}
		if level.Ante < 0 {
			return ErrNegativeAnte
		}
		if i > 0 && level.BigBlind <= structure.BlindLevels[i-1].BigBlind {
			return ErrBlindsNotIncreasing
		}
	}

	return nil
}

// ValidatePrizeStructure checks positions are sequential from 1 and the
// shares do not exceed the pool. Any unallocated remainder goes to 1st.
func ValidatePrizeStructure(structure PrizeStructure) error {
	if len(structure.Positions) == 0 {
		return ErrEmptyPrizeStructure
	}

	totalBasisPoints := 0
	for i, pos := range structure.Positions {
		if pos.Position != i+1 {
			return ErrInvalidPrizePositions
		}
		if pos.BasisPoints <= 0 || pos.BasisPoints > 10000 {
			return ErrInvalidPrizePercentage
		}
		totalBasisPoints += pos.BasisPoints
	}

	if totalBasisPoints > 10000 {
		return ErrPrizePercentageMismatch
	}

	return nil
}

// CalculatePrizeAmounts splits prizePool by finishing position using integer
// math. Rounding remainders are paid to 1st place.
func CalculatePrizeAmounts(prizePool int, structure PrizeStructure) map[int]int {
	prizes := make(map[int]int)
	totalAllocated := 0

	for _, pos := range structure.Positions {
		amount := (prizePool * pos.BasisPoints) / 10000
		prizes[pos.Position] = amount
		totalAllocated += amount
	}

	if remainder := prizePool - totalAllocated; remainder > 0 {
		prizes[1] += remainder
	}

	return prizes
}
