package games

type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ten:
		return "10"
	default:
		return string('0' + byte(r))
	}
}

// Card identity is (rank, suit); a deck never holds duplicates.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Hand is one participant's cards, appended to by draws within a round and
// cleared between rounds.
type Hand []Card

const DeckSize = 52

// Deck is an ordered pile of cards dealt from the top (the end of the slice).
type Deck struct {
	cards []Card
}

// NewDeck builds all 52 rank×suit combinations in suit-major order.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// NewShuffledDeck builds a fresh deck permuted by a Fisher–Yates shuffle, so
// every ordering is equally likely given a uniform source.
func NewShuffledDeck(rng RNG) *Deck {
	deck := NewDeck()
	deck.Shuffle(rng)
	return deck
}

func (d *Deck) Shuffle(rng RNG) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Deal removes and returns the top card.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

func draw(deck *Deck, hand *Hand) error {
	card, err := deck.Deal()
	if err != nil {
		return err
	}
	*hand = append(*hand, card)
	return nil
}
