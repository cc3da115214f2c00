package deck

// Hand represents a party's cards for a single round
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// Points returns the running total of the hand.
// Aces always count as 11; there is no soft-ace re-evaluation.
func (h Hand) Points() int {
	total := 0
	for _, c := range h {
		total += c.Points()
	}

	return total
}

// Busted returns true if the hand total exceeds 21
func (h Hand) Busted() bool {
	return h.Points() > 21
}

// LastCard returns the last card in the hand or a zero card if the hand is empty
func (h Hand) LastCard() Card {
	n := len(h)
	if n == 0 {
		return Card{}
	}

	return h[n-1]
}

func (h Hand) String() string {
	return CardsToString(h)
}
