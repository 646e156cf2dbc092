package grid

import "fmt"

// ItemKind tags the collectible variants
type ItemKind int

const (
	Pill ItemKind = iota
	Gold
	Ice
)

const (
	PillScore = 1
	GoldScore = 5
	IceScore  = 0
)

// Item is a collectible lying on a cell
type Item struct {
	Kind  ItemKind `json:"kind"`
	Score int      `json:"score"`
}

// NewItem returns the item of the given kind with its score
func NewItem(kind ItemKind) Item {
	switch kind {
	case Gold:
		return Item{Kind: Gold, Score: GoldScore}
	case Ice:
		return Item{Kind: Ice, Score: IceScore}
	default:
		return Item{Kind: Pill, Score: PillScore}
	}
}

// Mandatory reports whether the item must be collected to finish a level.
// Ice never is.
func (i Item) Mandatory() bool {
	return i.Kind == Pill || i.Kind == Gold
}

func (k ItemKind) String() string {
	switch k {
	case Pill:
		return "Pill"
	case Gold:
		return "Gold"
	case Ice:
		return "Ice"
	}
	return "Unknown"
}

// ParseItemKind is the inverse of ItemKind.String
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "Pill", "pill":
		return Pill, true
	case "Gold", "gold":
		return Gold, true
	case "Ice", "ice":
		return Ice, true
	}
	return Pill, false
}

// MarshalText encodes the kind by name
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *ItemKind) UnmarshalText(text []byte) error {
	parsed, ok := ParseItemKind(string(text))
	if !ok {
		return fmt.Errorf("unknown item kind %q", string(text))
	}
	*k = parsed
	return nil
}
