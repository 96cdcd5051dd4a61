package entities

import "fmt"

// Suit represents a card suit, 1..4

type Suit int

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

// Face represents a card face, 1..13 with 1 as the Ace

type Face int

const (
	Ace Face = iota + 1
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

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

var faceSymbols = map[Face]string{
	Ace: "A", Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K",
}

// String returns the face symbol
func (f Face) String() string {
	if s, ok := faceSymbols[f]; ok {
		return s
	}
	return fmt.Sprintf("Face(%d)", int(f))
}

// Card represents a playing card. Cards are values and never change once dealt.

type Card struct {
	Suit Suit
	Face Face
}

// NewCard creates a new card

func NewCard(suit Suit, face Face) Card {
	return Card{
		Suit: suit,
		Face: face,
	}
}

// IsAce reports whether the card is an Ace
func (c Card) IsAce() bool {
	return c.Face == Ace
}

// Value returns the initial blackjack value: Ace 11, court cards 10
func (c Card) Value() int {
	switch {
	case c.Face == Ace:
		return 11
	case c.Face >= Jack:
		return 10
	default:
		return int(c.Face)
	}
}

// HiLo returns the card's Hi-Lo count contribution
func (c Card) HiLo() int {
	switch {
	case c.Face >= Two && c.Face <= Six:
		return 1
	case c.Face >= Seven && c.Face <= Nine:
		return 0
	default:
		return -1
	}
}

// SameFace compares faces only; suits are irrelevant for split eligibility
func (c Card) SameFace(other Card) bool {
	return c.Face == other.Face
}

// String returns the string representation of the card

func (c Card) String() string {
	return suitSymbols[c.Suit] + c.Face.String()
}
