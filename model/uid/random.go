package uid

import gonanoid "github.com/matoous/go-nanoid/v2"

// RandomLength is the code length produced by NewRandom.
const RandomLength = 21

// Random is a NanoID based identifier. It carries no time or ordering
// information, so it should only be compared for equality.
type Random string

// NewRandom generates a new random identifier.
func NewRandom() Random {
	return Random(gonanoid.Must(RandomLength))
}

// RandomFrom wraps code as is; no length or alphabet check is applied.
func RandomFrom(code string) Random {
	return Random(code)
}

// ValidRandom reports whether code has the length and URL-safe alphabet
// NewRandom produces.
func ValidRandom(code string) bool {
	if len(code) != RandomLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		switch c := code[i]; {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

func (r Random) Code() string { return string(r) }

func (r Random) Kind() Kind { return KindRandom }

func (r Random) String() string { return string(r) }
