package simulator

import (
	"fmt"
	"math/rand"
	"sort"
)

type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (hr HandRank) String() string {
	names := []string{"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush"}
	if int(hr) < 0 || int(hr) >= len(names) {
		return "Unknown"
	}
	return names[hr]
}

// card ranks run from 2 to 14 (ace).
type card struct {
	rank int
	suit byte
}

func (c card) String() string {
	return fmt.Sprintf("%c%c", "??23456789TJQKA"[c.rank], c.suit)
}

func newDeck(rng *rand.Rand) []card {
	deck := make([]card, 0, 52)
	for _, suit := range []byte("hdcs") {
		for rank := 2; rank <= 14; rank++ {
			deck = append(deck, card{rank: rank, suit: suit})
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// handScore orders hands: a higher score wins, equal scores split.
type handScore int

func (s handScore) Rank() HandRank {
	return HandRank(s >> 20)
}

// bestHand scores the best five-card hand within cards.
func bestHand(cards []card) handScore {
	if len(cards) < 5 {
		return 0
	}
	var best handScore
	hand := make([]card, 5)
	var choose func(start, n int)
	choose = func(start, n int) {
		if n == 5 {
			if s := scoreFive(hand); s > best {
				best = s
			}
			return
		}
		for i := start; i <= len(cards)-(5-n); i++ {
			hand[n] = cards[i]
			choose(i+1, n+1)
		}
	}
	choose(0, 0)
	return best
}

func scoreFive(hand []card) handScore {
	counts := make(map[int]int, 5)
	flush := true
	for i, c := range hand {
		counts[c.rank]++
		if i > 0 && c.suit != hand[0].suit {
			flush = false
		}
	}

	// ranks ordered by multiplicity, then by rank
	ranks := make([]int, 0, len(counts))
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if counts[ranks[i]] != counts[ranks[j]] {
			return counts[ranks[i]] > counts[ranks[j]]
		}
		return ranks[i] > ranks[j]
	})

	straightHigh := 0
	if len(ranks) == 5 {
		switch {
		case ranks[0]-ranks[4] == 4:
			straightHigh = ranks[0]
		case ranks[0] == 14 && ranks[1] == 5:
			straightHigh = 5
		}
	}

	var category HandRank
	switch {
	case straightHigh > 0 && flush:
		category = StraightFlush
	case counts[ranks[0]] == 4:
		category = FourOfAKind
	case counts[ranks[0]] == 3 && counts[ranks[1]] == 2:
		category = FullHouse
	case flush:
		category = Flush
	case straightHigh > 0:
		category = Straight
	case counts[ranks[0]] == 3:
		category = ThreeOfAKind
	case counts[ranks[0]] == 2 && counts[ranks[1]] == 2:
		category = TwoPair
	case counts[ranks[0]] == 2:
		category = OnePair
	default:
		category = HighCard
	}

	score := int(category) << 20
	if straightHigh > 0 {
		return handScore(score | straightHigh<<16)
	}
	for i, r := range ranks {
		score |= r << (16 - 4*i)
	}
	return handScore(score)
}

// showdown deals two heads-up hands and a board from a fresh deck. It
// returns 1 when the first hand wins, -1 when the second does and 0 on a
// split.
func showdown(rng *rand.Rand) (result int, first, second handScore) {
	deck := newDeck(rng)
	board := deck[4:9]
	first = bestHand(append([]card{deck[0], deck[2]}, board...))
	second = bestHand(append([]card{deck[1], deck[3]}, board...))
	switch {
	case first > second:
		return 1, first, second
	case first < second:
		return -1, first, second
	}
	return 0, first, second
}
