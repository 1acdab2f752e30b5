package formatting

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type numKind uint8

const (
	numInt numKind = iota
	numUint
	numFloat
)

type numberValue struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n numberValue) float() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	}
	return n.f
}

func (n numberValue) value() any {
	switch n.kind {
	case numInt:
		return n.i
	case numUint:
		return n.u
	}
	return n.f
}

func toNumber(v any) (numberValue, bool) {
	switch x := v.(type) {
	case int:
		return numberValue{kind: numInt, i: int64(x)}, true
	case int8:
		return numberValue{kind: numInt, i: int64(x)}, true
	case int16:
		return numberValue{kind: numInt, i: int64(x)}, true
	case int32:
		return numberValue{kind: numInt, i: int64(x)}, true
	case int64:
		return numberValue{kind: numInt, i: x}, true
	case uint:
		return numberValue{kind: numUint, u: uint64(x)}, true
	case uint8:
		return numberValue{kind: numUint, u: uint64(x)}, true
	case uint16:
		return numberValue{kind: numUint, u: uint64(x)}, true
	case uint32:
		return numberValue{kind: numUint, u: uint64(x)}, true
	case uint64:
		return numberValue{kind: numUint, u: x}, true
	case uintptr:
		return numberValue{kind: numUint, u: uint64(x)}, true
	case float32:
		return numberValue{kind: numFloat, f: float64(x)}, true
	case float64:
		return numberValue{kind: numFloat, f: x}, true
	}
	return numberValue{}, false
}

var groupPrinter = message.NewPrinter(language.English)

func formatNumber(n numberValue, format string) (string, bool) {
	spec := format[0]
	rest := format[1:]
	precision := -1
	if rest != "" {
		p, err := strconv.Atoi(rest)
		if err != nil || p < 0 || p > 99 {
			return customNumber(n.float(), format)
		}
		precision = p
	}
	switch spec {
	case 'D', 'd':
		if n.kind == numFloat {
			return "", false
		}
		return padDigits(n, 10, precision, false), true
	case 'X', 'x':
		if n.kind == numFloat {
			return "", false
		}
		return padDigits(n, 16, precision, spec == 'X'), true
	case 'N', 'n':
		if precision < 0 {
			precision = 2
		}
		return groupPrinter.Sprint(number.Decimal(n.value(), number.Scale(precision))), true
	case 'F', 'f':
		if precision < 0 {
			precision = 2
		}
		return strconv.FormatFloat(n.float(), 'f', precision, 64), true
	case 'E', 'e':
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(n.float(), spec, precision, 64), true
	case 'P', 'p':
		if precision < 0 {
			precision = 2
		}
		return groupPrinter.Sprint(number.Decimal(n.float()*100, number.Scale(precision))) + "%", true
	case 'G', 'g':
		if precision <= 0 {
			if n.kind != numFloat {
				return Sprint(n.value()), true
			}
			precision = -1
		}
		verb := byte('g')
		if spec == 'G' {
			verb = 'G'
		}
		return strconv.FormatFloat(n.float(), verb, precision, 64), true
	}
	return customNumber(n.float(), format)
}

func padDigits(n numberValue, base, width int, upper bool) string {
	var digits string
	negative := false
	switch {
	case n.kind == numUint:
		digits = strconv.FormatUint(n.u, base)
	case base == 16:
		digits = strconv.FormatUint(uint64(n.i), 16)
	default:
		negative = n.i < 0
		if negative {
			digits = strconv.FormatUint(uint64(-(n.i+1))+1, 10)
		} else {
			digits = strconv.FormatInt(n.i, 10)
		}
	}
	if upper {
		digits = strings.ToUpper(digits)
	}
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	if negative {
		return "-" + digits
	}
	return digits
}

// customNumber handles digit patterns built from '0', '#', ',' and '.':
// zeros are required digits, hashes optional ones and a comma in the
// integer part turns on thousands grouping.
func customNumber(f float64, pattern string) (string, bool) {
	if strings.Trim(pattern, "0#,.") != "" || strings.Count(pattern, ".") > 1 {
		return "", false
	}
	intPart, fracPart, _ := strings.Cut(pattern, ".")
	grouping := strings.Contains(intPart, ",")
	minInt := strings.Count(intPart, "0")
	minFrac := strings.Count(fracPart, "0")
	maxFrac := minFrac + strings.Count(fracPart, "#")

	negative := f < 0
	if negative {
		f = -f
	}
	s := strconv.FormatFloat(f, 'f', maxFrac, 64)
	whole, frac, _ := strings.Cut(s, ".")
	for len(frac) > minFrac && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	if whole == "0" && minInt == 0 {
		whole = ""
	}
	if len(whole) < minInt {
		whole = strings.Repeat("0", minInt-len(whole)) + whole
	}
	if grouping {
		whole = group(whole)
	}
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if out == "" {
		out = "0"
	}
	if negative && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out, true
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
