package document

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders an amount with the rupee symbol, Indian digit grouping
// (3-then-2: 10,00,000) and zero minor units, the display convention used
// across the front desk. Negative amounts keep their sign; a negative
// balance is a first-class state, not an error.
func FormatINR(v float64) string {
	r := int64(math.Round(v))
	neg := r < 0
	if neg {
		r = -r
	}
	s := groupIndian(strconv.FormatInt(r, 10))
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
