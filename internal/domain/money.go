package domain

import (
	"strconv"
	"strings"
)

// Price is a monetary amount. The marketplace API returns prices as JSON
// numbers or numeric strings depending on the endpoint, so decoding is
// lenient: anything unparseable becomes 0.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		v = 0
	}
	*p = Price(v)
	return nil
}

func (p Price) Float() float64 {
	return float64(p)
}

// ParsePrice parses a price from form or attribute input, defaulting to 0.
func ParsePrice(s string) Price {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Price(v)
}

// Quantity is a line-item count. Numbers and numeric strings are accepted;
// anything unparseable or below 1 decodes as 1.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	n := int(v)
	if !ok || n < 1 {
		n = 1
	}
	*q = Quantity(n)
	return nil
}

func (q Quantity) Int() int {
	return int(q)
}

// ParseQuantity parses a quantity from form input, defaulting to 1.
func ParseQuantity(s string) Quantity {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return Quantity(n)
}

func parseNumber(data []byte) (float64, bool) {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0, false
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
