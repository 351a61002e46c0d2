package cron

import (
	"fmt"
	errs "github.com/osmike/orbitcron/internal/error"
	"strconv"
	"strings"
)

// Kind is the shape of a parsed cron field.
type Kind int

const (
	// Wildcard matches every value of the unit ("*").
	Wildcard Kind = iota
	// Step matches every Nth value starting at the unit minimum ("*/N").
	Step
	// List matches the listed values and ranges ("1,5,10-20,mon").
	List
)

// Unit describes the legal values of one of the five cron fields.
type Unit struct {
	Name  string
	Min   int
	Max   int
	Names map[string]int // optional, keys are lowercase
}

var (
	Minute     = Unit{Name: "minute", Min: 0, Max: 59}
	Hour       = Unit{Name: "hour", Min: 0, Max: 23}
	DayOfMonth = Unit{Name: "day-of-month", Min: 1, Max: 31}
	Month      = Unit{Name: "month", Min: 1, Max: 12, Names: map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}}
	DayOfWeek = Unit{Name: "day-of-week", Min: 0, Max: 6, Names: map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}}
)

// resolve converts a single token into a value of the unit.
//
// The token is either a plain non-negative decimal number or, when the unit has a
// name table, a case-insensitive name. The value must fall inside [Min, Max].
func (u Unit) resolve(token string) (int, error) {
	var value int
	if isDigits(token) {
		v, err := strconv.Atoi(token)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q: %w", token, err)
		}
		value = v
	} else if v, ok := u.Names[strings.ToLower(token)]; ok {
		value = v
	} else {
		return 0, fmt.Errorf("invalid value %q", token)
	}
	if value < u.Min || value > u.Max {
		return 0, fmt.Errorf("value %d out of range [%d-%d]", value, u.Min, u.Max)
	}
	return value, nil
}

// Item is one entry of a List field. A scalar item has Low == High.
type Item struct {
	Low  int
	High int
}

// IsRange reports whether the item covers more than one value.
func (i Item) IsRange() bool { return i.Low != i.High }

func (i Item) contains(v int) bool { return v >= i.Low && v <= i.High }

// Field is one parsed field of a cron expression.
type Field struct {
	raw   string
	unit  Unit
	kind  Kind
	step  int
	items []Item
}

// ParseField parses a single cron field for the given unit.
//
// Supported syntax:
//   - "*": wildcard, matches all values of the unit.
//   - "*/N": step, matches every Nth value starting at the unit minimum.
//   - "X", "X-Y", "X,Y-Z": lists of values and strictly ascending ranges;
//     months and weekdays also accept three-letter names.
//
// Steps are only legal as the whole field, never inside a list.
//
// Parameters:
//   - raw: Cron field string to parse (e.g., "*/5", "1,2,3", "jan-mar").
//   - unit: Domain of legal values for this field.
//
// Returns:
//   - The parsed Field.
//   - An error wrapping ErrInvalidField if the syntax or a value is invalid.
func ParseField(raw string, unit Unit) (*Field, error) {
	f := &Field{raw: raw, unit: unit}

	if raw == "*" {
		f.kind = Wildcard
		return f, nil
	}

	if strings.HasPrefix(raw, "*/") {
		digits := strings.TrimPrefix(raw, "*/")
		if !isDigits(digits) {
			return nil, fieldErr(unit, raw, fmt.Errorf("invalid step %q", digits))
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, fieldErr(unit, raw, fmt.Errorf("invalid step %q: %w", digits, err))
		}
		if n < 1 || n < unit.Min || n > unit.Max {
			return nil, fieldErr(unit, raw, fmt.Errorf("step %d out of range [%d-%d]", n, max(1, unit.Min), unit.Max))
		}
		f.kind = Step
		f.step = n
		return f, nil
	}

	f.kind = List
	for _, token := range strings.Split(raw, ",") {
		item, err := parseItem(token, unit)
		if err != nil {
			return nil, fieldErr(unit, raw, err)
		}
		f.items = append(f.items, item)
	}
	return f, nil
}

// parseItem parses one comma-separated token of a list field.
func parseItem(token string, unit Unit) (Item, error) {
	if strings.TrimSpace(token) == "" {
		return Item{}, fmt.Errorf("empty list entry")
	}
	if strings.Contains(token, "*") {
		return Item{}, fmt.Errorf("wildcard or step %q inside a list", token)
	}

	if strings.Contains(token, "-") {
		bounds := strings.Split(token, "-")
		if len(bounds) != 2 {
			return Item{}, fmt.Errorf("invalid range %q", token)
		}
		low, err := unit.resolve(bounds[0])
		if err != nil {
			return Item{}, fmt.Errorf("range start: %w", err)
		}
		high, err := unit.resolve(bounds[1])
		if err != nil {
			return Item{}, fmt.Errorf("range end: %w", err)
		}
		if low >= high {
			return Item{}, fmt.Errorf("range start %d not below end %d", low, high)
		}
		return Item{Low: low, High: high}, nil
	}

	v, err := unit.resolve(token)
	if err != nil {
		return Item{}, err
	}
	return Item{Low: v, High: v}, nil
}

// Matches reports whether v satisfies the field.
func (f *Field) Matches(v int) bool {
	switch f.kind {
	case Wildcard:
		return v >= f.unit.Min && v <= f.unit.Max
	case Step:
		return v >= f.unit.Min && v <= f.unit.Max && (v-f.unit.Min)%f.step == 0
	default:
		for _, item := range f.items {
			if item.contains(v) {
				return true
			}
		}
		return false
	}
}

func (f *Field) Kind() Kind { return f.kind }

// Step returns N for a Step field and 0 otherwise.
func (f *Field) Step() int { return f.step }

// Items returns a copy of the list items; nil unless the field is a List.
func (f *Field) Items() []Item {
	if f.items == nil {
		return nil
	}
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Field) Unit() Unit { return f.unit }

func (f *Field) String() string { return f.raw }

// Values expands the field into the ascending list of values it matches.
func (f *Field) Values() []int {
	var values []int
	for v := f.unit.Min; v <= f.unit.Max; v++ {
		if f.Matches(v) {
			values = append(values, v)
		}
	}
	return values
}

func fieldErr(unit Unit, raw string, err error) error {
	return errs.New(errs.ErrInvalidField, fmt.Sprintf("%s field %q: %v", unit.Name, raw, err))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
