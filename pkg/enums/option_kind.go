package enums

// OptionKind is the closed variant over a product option's cardinality
// rules, derived from its required/multiple flags at construction so
// selection branching can switch exhaustively instead of re-checking
// booleans at every call site.
type OptionKind string

const (
	OptionKindOptionalSingle   OptionKind = "optional-single"
	OptionKindRequiredSingle   OptionKind = "required-single"
	OptionKindOptionalMultiple OptionKind = "optional-multiple"
	OptionKindRequiredMultiple OptionKind = "required-multiple"
)

// String implements fmt.Stringer.
func (k OptionKind) String() string {
	return string(k)
}

// OptionKindOf derives the variant from the two catalog flags.
func OptionKindOf(required, multiple bool) OptionKind {
	switch {
	case required && multiple:
		return OptionKindRequiredMultiple
	case required:
		return OptionKindRequiredSingle
	case multiple:
		return OptionKindOptionalMultiple
	default:
		return OptionKindOptionalSingle
	}
}

// Multiple reports whether the variant allows more than one chosen item.
func (k OptionKind) Multiple() bool {
	return k == OptionKindOptionalMultiple || k == OptionKindRequiredMultiple
}

// Required reports whether the variant demands at least one chosen item.
func (k OptionKind) Required() bool {
	return k == OptionKindRequiredSingle || k == OptionKindRequiredMultiple
}
