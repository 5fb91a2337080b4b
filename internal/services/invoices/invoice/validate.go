package invoice

import (
	"strconv"
	"strings"
)

// Form field names.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldDate       = "date"
)

// Validation messages shown next to the offending field.
const (
	MessageCustomerRequired = "Please select a customer."
	MessageAmountPositive   = "Please enter an amount greater than $0."
	MessageStatusRequired   = "Please select an invoice status."
)

// MaxAmountCents is the largest amount a single invoice may carry,
// one trillion dollars. Listing and dashboard sums stay well inside int64.
const MaxAmountCents int64 = 100_000_000_000_000

// Input is a validated invoice form. AmountCents is in minor currency units
// and always lies in [1, MaxAmountCents].
type Input struct {
	CustomerID  string
	AmountCents int64
	Status      Status
	Date        string
}

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

// Has reports whether field has at least one message.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field, or "".
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Validate checks every field of a flat form submission and returns the typed
// input only when all fields pass. A missing key is treated as an empty value.
func Validate(raw map[string]string) (Input, FieldErrors, bool) {
	errs := FieldErrors{}

	customerID := raw[FieldCustomerID]
	if customerID == "" {
		errs[FieldCustomerID] = append(errs[FieldCustomerID], MessageCustomerRequired)
	}

	cents, parsed := ParseCents(raw[FieldAmount])
	if !parsed || cents < 1 || cents > MaxAmountCents {
		errs[FieldAmount] = append(errs[FieldAmount], MessageAmountPositive)
	}

	status := Status(raw[FieldStatus])
	if !status.Valid() {
		errs[FieldStatus] = append(errs[FieldStatus], MessageStatusRequired)
	}

	if len(errs) > 0 {
		return Input{}, errs, false
	}
	return Input{
		CustomerID:  customerID,
		AmountCents: cents,
		Status:      status,
		Date:        raw[FieldDate],
	}, nil, true
}

// maxWholeDigits bounds the integer part before it is scaled, so the
// multiplication below cannot overflow.
const maxWholeDigits = 15

// ParseCents converts a plain decimal form value such as "19.99" to minor
// units without going through float64. Digits past the second decimal round
// half up. Signs, exponents and anything that is not digits with an optional
// single "." report false.
func ParseCents(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return 0, false
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, false
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > maxWholeDigits {
		return 0, false
	}

	var cents int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, false
		}
		cents = n * 100
	}
	padded := frac + "00"
	cents += int64(padded[0]-'0')*10 + int64(padded[1]-'0')
	if len(frac) > 2 && frac[2] >= '5' {
		cents++
	}
	return cents, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FromCents converts minor units back to a major-unit amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
