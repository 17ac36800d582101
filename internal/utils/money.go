package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ParseDecimal accepts both "38,27" and "38.27".
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// FloorInt drops the fractional part of a display price.
func FloorInt(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(math.Floor(v))
}

// DisplayPrice renders "<int> <symbol>", e.g. "85 €".
func DisplayPrice(amount float64, symbol string) string {
	return fmt.Sprintf("%d %s", FloorInt(amount), symbol)
}
