package payload

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Weights is what the payload says about the load weight. Box readings are kept for audit.
type Weights struct {
	NetLbs *float64 `json:"net_lbs"`
	Box1   *float64 `json:"box1"`
	Box2   *float64 `json:"box2"`
}

var (
	totalWeightKeys = []string{"total_weight"}
	totalAliasKeys  = []string{"total_lbs", "net_lbs", "netlbs", "net"}
	nonNumeric      = regexp.MustCompile(`[^0-9.\-]`)
	leadingReading  = regexp.MustCompile(`^\s*([0-9,]+)\s*(\(|$)`)
)

// ExtractWeights derives the net weight from payload_json. Priority: total_weight, then the
// other total aliases, then the summed box_numbers list, then the free-text weight block.
// A result of zero or less is reported as absent.
func ExtractWeights(raw *string) Weights {
	var out Weights
	blob := Decode(raw)
	if len(blob) == 0 {
		return out
	}

	net, found := blob.decimal(totalWeightKeys...)
	if !found {
		net, found = blob.decimal(totalAliasKeys...)
	}

	if !found {
		if v, ok := blob.Lookup("box_numbers"); ok {
			if nums := boxReadings(v); len(nums) > 0 {
				out.Box1, out.Box2 = readingAt(nums, 0), readingAt(nums, 1)
				net = sum(nums)
				found = net.IsPositive()
			}
		}
	}

	// нулевая сумма коробок считается отсутствием веса
	if !found {
		if v, ok := blob.Lookup("weight"); ok && v.String() != nil {
			if nums := weightBlockReadings(*v.String()); len(nums) > 0 {
				out.Box1, out.Box2 = readingAt(nums, 0), readingAt(nums, 1)
				net = sum(nums)
				found = net.IsPositive()
			}
		}
	}

	if found && net.IsPositive() {
		f := net.InexactFloat64()
		out.NetLbs = &f
	}
	return out
}

func (b Blob) decimal(aliases ...string) (decimal.Decimal, bool) {
	v, ok := b.Lookup(aliases...)
	if !ok {
		return decimal.Zero, false
	}
	return ToDecimal(v)
}

// ToDecimal reads a number out of a scalar. Strings are cleaned down to digits, '.' and '-'
// first, so "43,960 lbs" reads as 43960.
func ToDecimal(v Scalar) (decimal.Decimal, bool) {
	switch v.Kind {
	case KindNumber:
		d, err := decimal.NewFromString(v.Text)
		return d, err == nil
	case KindString:
		s := strings.TrimSpace(v.Text)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(nonNumeric.ReplaceAllString(s, ""))
		return d, err == nil
	}
	return decimal.Zero, false
}

func boxReadings(v Scalar) []decimal.Decimal {
	var parts []Scalar
	switch v.Kind {
	case KindList:
		parts = v.Items
	case KindString, KindNumber:
		for _, p := range strings.Split(v.Text, ",") {
			parts = append(parts, Scalar{Kind: KindString, Text: p})
		}
	}

	var out []decimal.Decimal
	for _, p := range parts {
		if d, ok := ToDecimal(p); ok {
			out = append(out, d)
		}
	}
	return out
}

// weightBlockReadings reads lines like "11842 (21,980)": a leading number followed by
// an opening parenthesis or the end of the line.
func weightBlockReadings(text string) []decimal.Decimal {
	var out []decimal.Decimal
	for _, line := range lineBreak.Split(text, -1) {
		m := leadingReading.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if d, ok := ToDecimal(Scalar{Kind: KindString, Text: m[1]}); ok {
			out = append(out, d)
		}
	}
	return out
}

func sum(nums []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, nums...)
}

func readingAt(nums []decimal.Decimal, i int) *float64 {
	if i >= len(nums) {
		return nil
	}
	f := nums[i].InexactFloat64()
	return &f
}
