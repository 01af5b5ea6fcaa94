package cards

import (
	"math/rand"
	"strings"

	"github.com/Jaggernaut555/chaoticbot/queue"
)

// RankNames - Short name of each rank, indexed by rank
var RankNames = []string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// SuitNames - spades, clubs, hearts, diamonds
var SuitNames = []string{"♠️", "♣️", "♥️", "♦️"}

var faceNames = []string{"Jack", "Queen", "King"}

// Package constants
const (
	numSuits        = 4
	numCardsPerSuit = 13
)

// Card - A playing card. Rank is 1 (ace) to 13 (king), suit is 0 to 3
type Card struct {
	Rank int
	Suit int
}

// New - Build a card
func New(rank, suit int) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsAce - Aces count as 1 or 11
func (c Card) IsAce() bool {
	return c.Rank == 1
}

// PointValue - Faces are worth 10
func (c Card) PointValue() int {
	if c.Rank > 10 {
		return 10
	}
	return c.Rank
}

// MinValue - Smallest value this card can contribute to a hand
func (c Card) MinValue() int {
	if c.IsAce() {
		return 1
	}
	return c.PointValue()
}

// SameRank - Cards of the same rank can be split
func (c Card) SameRank(other Card) bool {
	return c.Rank == other.Rank
}

func (c Card) String() string {
	return RankNames[c.Rank] + SuitNames[c.Suit]
}

// Name - Full name, like "Queen of ♥️"
func (c Card) Name() string {
	var name string
	switch {
	case c.IsAce():
		name = "Ace"
	case c.Rank > 10:
		name = faceNames[c.Rank-11]
	default:
		name = RankNames[c.Rank]
	}
	return name + " of " + SuitNames[c.Suit]
}

// GenerateCard - Generate a random card from nothing
func GenerateCard() Card {
	return New(rand.Intn(numCardsPerSuit)+1, rand.Intn(numSuits))
}

// Hand - Ordered cards held by a player or the dealer
type Hand []Card

// HardTotal - Every ace counted as 1
func (h Hand) HardTotal() int {
	total := 0
	for _, c := range h {
		total += c.MinValue()
	}
	return total
}

// Value - Best total obtainable by promoting aces, never promoting into a bust.
// A busted hand reports its hard total.
func (h Hand) Value() int {
	total := h.HardTotal()
	for _, c := range h {
		if !c.IsAce() {
			continue
		}
		if total > 11 {
			break
		}
		total += 10
	}
	return total
}

// Valid - Hand has not busted
func (h Hand) Valid() bool {
	return h.HardTotal() <= 21
}

// IsBlackjack - Natural 21 on the first two cards
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// Contains - Whether a card of the same rank is already held
func (h Hand) Contains(c Card) bool {
	for _, v := range h {
		if v.SameRank(c) {
			return true
		}
	}
	return false
}

func (h Hand) String() string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

// Shoe - The cards a dealer draws from, in draw order
type Shoe struct {
	cards *queue.Queue[Card]
	rng   *rand.Rand
	decks int
}

// NewShoe - Build a shoe of several shuffled decks
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	s := &Shoe{cards: queue.New[Card](), rng: rng, decks: decks}
	s.refill()
	return s
}

// NewShoeFrom - A shoe that deals exactly the given cards in order, then falls back to a shuffled deck
func NewShoeFrom(cards ...Card) *Shoe {
	return &Shoe{cards: queue.New(cards...), rng: rand.New(rand.NewSource(1)), decks: 1}
}

// Draw - Pick the next card from the shoe
func (s *Shoe) Draw() Card {
	card, ok := s.cards.Pop()
	if !ok {
		s.refill()
		card, _ = s.cards.Pop()
	}
	return card
}

// Size - Cards left before a refill
func (s *Shoe) Size() int {
	return s.cards.Len()
}

func (s *Shoe) refill() {
	deck := make([]Card, 0, s.decks*numSuits*numCardsPerSuit)
	for d := 0; d < s.decks; d++ {
		for suit := 0; suit < numSuits; suit++ {
			for rank := 1; rank <= numCardsPerSuit; rank++ {
				deck = append(deck, New(rank, suit))
			}
		}
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	s.cards.Push(deck...)
}
