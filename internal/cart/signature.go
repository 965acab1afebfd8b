package cart

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// Signature is the order-independent canonical identity of a product
// configuration. Two configured instances merge into one cart line iff
// their signatures are equal.
type Signature string

// Separators sit below printable ASCII so they cannot collide with
// catalog ids.
const (
	sigRecordSep = "\x1e"
	sigFieldSep  = "\x1f"
)

// ComputeSignature canonicalizes a configuration: options sorted by id,
// item ids sorted ascending inside each option. Declaration order and
// selection order never affect the result.
func ComputeSignature(productID string, selections []SelectedOption) Signature {
	records := make([]string, 0, len(selections))
	for _, selection := range selections {
		itemIDs := make([]string, 0, len(selection.Items))
		for _, item := range selection.Items {
			itemIDs = append(itemIDs, item.ItemID)
		}
		sort.Strings(itemIDs)
		records = append(records, selection.OptionID+sigFieldSep+strings.Join(itemIDs, sigFieldSep))
	}
	sort.Strings(records)

	var builder strings.Builder
	builder.WriteString(productID)
	for _, record := range records {
		builder.WriteString(sigRecordSep)
		builder.WriteString(record)
	}
	return Signature(builder.String())
}

// Encode renders the signature in a URL-safe form for use as a line
// reference in API paths.
func (s Signature) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// DecodeSignature reverses Encode.
func DecodeSignature(encoded string) (Signature, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	return Signature(raw), nil
}
