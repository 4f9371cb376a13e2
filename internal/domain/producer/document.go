package producer

import "strings"

// DocumentKind identifies which Brazilian taxpayer registry a document belongs to
type DocumentKind string

const (
	DocumentCPF     DocumentKind = "CPF"  // individual, 11 digits
	DocumentCNPJ    DocumentKind = "CNPJ" // legal entity, 14 digits
	DocumentUnknown DocumentKind = ""
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

// NormalizeDocument strips every non-digit character from raw
func NormalizeDocument(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KindOf returns the registry implied by the digit count of raw
func KindOf(raw string) DocumentKind {
	switch len(NormalizeDocument(raw)) {
	case cpfLength:
		return DocumentCPF
	case cnpjLength:
		return DocumentCNPJ
	default:
		return DocumentUnknown
	}
}

// ValidateDocument reports whether raw is a well-formed CPF or CNPJ.
// Punctuation is ignored. Any input is accepted and the function never panics.
func ValidateDocument(raw string) bool {
	digits := NormalizeDocument(raw)
	switch len(digits) {
	case cpfLength:
		return validCPF(digits)
	case cnpjLength:
		return validCNPJ(digits)
	default:
		return false
	}
}

// FormatDocument renders a document with the usual mask
// (000.000.000-00 or 00.000.000/0000-00). Unknown shapes are returned as digits.
func FormatDocument(raw string) string {
	d := NormalizeDocument(raw)
	switch len(d) {
	case cpfLength:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case cnpjLength:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return d
	}
}

func validCPF(d string) bool {
	if allSame(d) {
		return false
	}
	first := cpfDigit(d[:9], 10)
	if first != int(d[9]-'0') {
		return false
	}
	second := cpfDigit(d[:10], 11)
	return second == int(d[10]-'0')
}

// cpfDigit weights the prefix from startWeight down to 2
func cpfDigit(prefix string, startWeight int) int {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (startWeight - i)
	}
	v := 11 - sum%11
	if v >= 10 {
		return 0
	}
	return v
}

func validCNPJ(d string) bool {
	if allSame(d) {
		return false
	}
	if cnpjDigit(d[:12], 5) != int(d[12]-'0') {
		return false
	}
	return cnpjDigit(d[:13], 6) == int(d[13]-'0')
}

// cnpjDigit weights the prefix starting at startWeight, decreasing and wrapping from 2 back to 9
func cnpjDigit(prefix string, startWeight int) int {
	sum := 0
	weight := startWeight
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
