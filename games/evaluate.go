package games

import "sort"

// BlackjackTotal scores a hand with faces as 10 and aces as 11, demoting aces
// to 1 one at a time while the total is above 21. The result is the best total
// ≤ 21 when one exists, otherwise the minimum (busted) total.
func BlackjackTotal(hand Hand) int {
	total := 0
	aces := 0
	for _, card := range hand {
		switch {
		case card.Rank == Ace:
			aces++
			total += 11
		case card.Rank >= Ten:
			total += 10
		default:
			total += int(card.Rank)
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// BaccaratValue is the per-card point value: A=1, 2–9 face, 10/J/Q/K=0.
func BaccaratValue(rank Rank) int {
	if rank >= Ten {
		return 0
	}
	return int(rank)
}

func BaccaratTotal(hand Hand) int {
	total := 0
	for _, card := range hand {
		total += BaccaratValue(card.Rank)
	}
	return total % 10
}

// HandRank is the category of a 5-card poker hand. Engines compare categories
// only; kicker tie-breaks within a category are deliberately not modeled.
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
	RoyalFlush
)

func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	}
	return "Unknown"
}

// pokerValue maps ranks for comparison with the ace always high, so A-2-3-4-5
// is not a straight in this model.
func pokerValue(rank Rank) int {
	if rank == Ace {
		return 14
	}
	return int(rank)
}

// PokerRank classifies a fixed 5-card hand into one of the ten categories.
func PokerRank(hand Hand) HandRank {
	values := make([]int, len(hand))
	for i, card := range hand {
		values[i] = pokerValue(card.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := true
	for _, card := range hand {
		if card.Suit != hand[0].Suit {
			flush = false
			break
		}
	}

	straight := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			straight = false
			break
		}
	}

	counts := map[int]int{}
	for _, value := range values {
		counts[value]++
	}
	groups := make([]int, 0, len(counts))
	for _, count := range counts {
		groups = append(groups, count)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	switch {
	case flush && straight && values[0] == 14:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2:
		return OnePair
	}
	return HighCard
}
