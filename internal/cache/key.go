package cache

import (
	"strconv"
	"strings"
)

// KeyBuilder builds cache keys for a single entity family. Keys are
// colon-joined lowercase segments: "family:operation:param:value:...".
// Because prefix deletion matches on these literal segments, every key for
// one operation must share the "family:operation:" prefix.
type KeyBuilder struct {
	family string
}

// NewKeyBuilder creates a key builder for the given entity family,
// for example "card" or "transaction".
func NewKeyBuilder(family string) KeyBuilder {
	return KeyBuilder{family: family}
}

// Family returns the entity family name.
func (b KeyBuilder) Family() string {
	return b.family
}

// Op builds a key from the operation name and trailing segments.
func (b KeyBuilder) Op(op string, segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, b.family, op)
	parts = append(parts, segments...)
	return SanitizeKey(strings.Join(parts, ":"))
}

// Detail builds a single-entity key: "family:op:id:42".
func (b KeyBuilder) Detail(op string, id int) string {
	return b.Op(op, "id", strconv.Itoa(id))
}

// List builds a paginated list key:
// "family:op:page:1:size:10:search:term".
func (b KeyBuilder) List(op string, page, size int, search string) string {
	return b.Op(op,
		"page", strconv.Itoa(page),
		"size", strconv.Itoa(size),
		"search", search)
}

// Monthly builds a monthly statistics key: "family:op:year:2026:month:8".
func (b KeyBuilder) Monthly(op string, year, month int) string {
	return b.Op(op, "year", strconv.Itoa(year), "month", strconv.Itoa(month))
}

// Yearly builds a yearly statistics key: "family:op:year:2026".
func (b KeyBuilder) Yearly(op string, year int) string {
	return b.Op(op, "year", strconv.Itoa(year))
}

// OpPrefix returns the shared prefix of every key the given operation
// produces, for use with PrefixPattern.
func (b KeyBuilder) OpPrefix(op string) string {
	return b.family + ":" + op + ":"
}

// FamilyPrefix returns the prefix shared by every key of the family.
func (b KeyBuilder) FamilyPrefix() string {
	return b.family + ":"
}

// SanitizeKey removes or replaces characters that might cause issues in cache keys.
func SanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"\n", "",
		"\r", "",
		"\t", "",
		"*", "_",
	)
	return replacer.Replace(key)
}

// maskMiddle keeps the first and last four characters of s and replaces the
// middle with asterisks. Values of eight characters or fewer are fully
// masked since keeping both ends would reveal most of the value.
func maskMiddle(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

// MaskCardNumber masks a card number for use in cache keys, span attributes
// and log fields. Only the first and last four digits survive.
func MaskCardNumber(cardNumber string) string {
	return maskMiddle(cardNumber)
}

// MaskAPIKey masks a merchant API key the same way card numbers are masked.
func MaskAPIKey(apiKey string) string {
	return maskMiddle(apiKey)
}
