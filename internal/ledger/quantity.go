package ledger

import (
	"regexp"
	"strconv"
	"strings"
)

// LineQuantity is the normalized (quantity, description) pair for one line
// item. The display unit rate is amount / quantity, so the per-category
// rules below exist to keep that division meaningful.
type LineQuantity struct {
	Quantity    int
	Description string
}

var (
	// Trailing "<N> day(s)" token in an admission description.
	stayDaysRe = regexp.MustCompile(`(\d+)\s*[Dd]ays?\s*$`)
	// Trailing "(xN)" suffix in a service description. Display heuristic
	// over free text; stripped from the returned description.
	qtySuffixRe = regexp.MustCompile(`\s*\(x(\d+)\)\s*$`)
)

// ExtractQuantity derives the quantity and cleaned description for a raw
// record. Quantity is at least 1.
func ExtractQuantity(ev *RawEvent) LineQuantity {
	desc := strings.TrimSpace(ev.Description)

	switch ev.Kind {
	case KindAdmission, KindAdmissionEvent:
		if ev.StayDays != nil && *ev.StayDays > 0 {
			return LineQuantity{Quantity: *ev.StayDays, Description: desc}
		}
		if m := stayDaysRe.FindStringSubmatch(desc); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return LineQuantity{Quantity: n, Description: desc}
			}
		}
		return LineQuantity{Quantity: 1, Description: desc}

	case KindService:
		if ev.BillingQty != nil && *ev.BillingQty > 1 {
			return LineQuantity{Quantity: *ev.BillingQty, Description: desc}
		}
		if m := qtySuffixRe.FindStringSubmatch(desc); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return LineQuantity{
					Quantity:    n,
					Description: strings.TrimSpace(qtySuffixRe.ReplaceAllString(desc, "")),
				}
			}
		}
		return LineQuantity{Quantity: 1, Description: desc}

	case KindPathology:
		// Always 1. The stored price is the order total, so a test count
		// here would corrupt the implied per-order unit rate.
		return LineQuantity{Quantity: 1, Description: desc}

	default:
		return LineQuantity{Quantity: 1, Description: desc}
	}
}
