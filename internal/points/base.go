package points

// Base is a nucleoside's base letter. The zero value means unset.
type Base byte

const (
	NoBase Base = 0
	BaseA  Base = 'A'
	BaseT  Base = 'T'
	BaseC  Base = 'C'
	BaseG  Base = 'G'
)

// DNABases lists the four assignable bases.
var DNABases = []Base{BaseA, BaseT, BaseC, BaseG}

// Complement returns the Watson-Crick partner base, or NoBase for NoBase.
func (b Base) Complement() Base {
	switch b {
	case BaseA:
		return BaseT
	case BaseT:
		return BaseA
	case BaseC:
		return BaseG
	case BaseG:
		return BaseC
	default:
		return NoBase
	}
}

func (b Base) String() string {
	if b == NoBase {
		return "-"
	}
	return string(rune(b))
}
