package dashboard

import (
	"strconv"
	"strings"
)

const rupee = "₹"

// Currency formats an amount in rupees with Indian digit grouping
// (1,50,000.00). A nil amount renders as "-".
func Currency(v *float64) string {
	if v == nil {
		return "-"
	}
	return Amount(*v)
}

func Amount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if s == "0.00" {
		sign = ""
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + rupee + groupIndian(whole) + "." + frac
}

// groupIndian puts the last three digits together and the rest in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
