package library

// Card represents a book with visual styling
type Card struct {
	BookKey    string
	Title      string
	Subtitle   string
	ColorStart [3]uint8 // RGB start color for gradient
	ColorEnd   [3]uint8 // RGB end color for gradient
}
