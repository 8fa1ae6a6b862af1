package core

// Color is the role a screen cell plays. Front-ends map each role to a
// concrete terminal or canvas colour.
type Color uint8

// Colour roles used by Drop Catch.
const (
	ColorDefault    Color = iota
	ColorFrame            // Field border
	ColorHUD              // Live counters
	ColorBest             // High score
	ColorDrop             // Good drop
	ColorCoin             // Coin
	ColorHazard           // Hazard
	ColorBasket           // Basket at rest
	ColorBasketDrag       // Basket while dragged
	ColorMilestone        // Progress banner
	ColorBanner           // Idle screen box
	ColorWin              // Result box after a win
	ColorLose             // Result box after a loss

	colorCount
)

// Valid reports whether c is a known role.
func (c Color) Valid() bool {
	return c < colorCount
}
