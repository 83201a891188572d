package extract

import "strings"

// Dictionary carries the externally configurable keyword lists the pipeline
// matches against. Lists are extensible through configuration without code
// changes; empty lists fall back to the built-in defaults.
type Dictionary struct {
	// Companies are known manufacturer names. Order matters: earlier
	// entries win when more than one matches a row.
	Companies []string
	// Accessories are product keywords that open a table row without a
	// brand prefix (bundled items such as a TV stand or a stabilizer).
	Accessories []string
	// Units are the tokens that mark an explicit quantity, e.g. "2 Nos".
	Units []string
}

// DefaultDictionary returns the built-in keyword lists covering the common
// consumer-electronics brands and accessory items seen on retail invoices.
func DefaultDictionary() Dictionary {
	return Dictionary{
		Companies: []string{
			"Whirlpool", "Samsung", "LG", "Apple", "Sony", "Godrej",
			"Haier", "Voltas", "Panasonic", "Philips", "Bajaj", "Onida",
			"Crompton", "Daikin", "Hitachi", "Bosch", "IFB", "Carrier",
			"Blue Star", "Lloyd", "Kelvinator", "Videocon", "Symphony",
			"Usha", "Havells", "Prestige", "Butterfly", "Pigeon", "Kent",
			"Aquaguard", "Mi", "Xiaomi", "Redmi", "Realme", "Oppo",
			"Vivo", "OnePlus", "Nokia", "Motorola", "Lenovo", "Dell",
			"HP", "Asus", "Acer", "Intex", "Micromax", "TCL", "Toshiba",
			"Sansui", "BPL",
		},
		Accessories: []string{
			"Stand", "Stabilizer", "Trolley", "Cover", "Remote",
			"Bracket", "Pipe", "Regulator", "Battery", "Adapter",
			"Connector", "Hose", "Filter",
		},
		Units: []string{
			"No", "Nos", "Pc", "Pcs", "Unit", "Units", "Set", "Sets",
			"Qty",
		},
	}
}

// withDefaults fills any empty list from the built-in dictionary.
func (d Dictionary) withDefaults() Dictionary {
	def := DefaultDictionary()
	if len(d.Companies) == 0 {
		d.Companies = def.Companies
	}
	if len(d.Accessories) == 0 {
		d.Accessories = def.Accessories
	}
	if len(d.Units) == 0 {
		d.Units = def.Units
	}
	return d
}

// MatchCompany reports the first dictionary company found anywhere in s,
// case-insensitively, returning the canonical dictionary spelling.
func (d Dictionary) MatchCompany(s string) (string, bool) {
	ls := strings.ToLower(s)
	for _, c := range d.Companies {
		if containsWord(ls, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

// HasCompanyPrefix reports whether the line starts with a dictionary
// company name, case-insensitively.
func (d Dictionary) HasCompanyPrefix(line string) bool {
	ll := strings.ToLower(strings.TrimSpace(line))
	for _, c := range d.Companies {
		lc := strings.ToLower(c)
		if strings.HasPrefix(ll, lc) && !followedByLetter(ll, len(lc)) {
			return true
		}
	}
	return false
}

// IsAccessory reports whether the line starts with a known accessory
// keyword, case-insensitively.
func (d Dictionary) IsAccessory(line string) bool {
	ll := strings.ToLower(strings.TrimSpace(line))
	for _, a := range d.Accessories {
		la := strings.ToLower(a)
		if strings.HasPrefix(ll, la) && !followedByLetter(ll, len(la)) {
			return true
		}
	}
	return false
}

// IsUnit reports whether tok is a quantity unit token ("Nos", "Pcs", ...).
func (d Dictionary) IsUnit(tok string) bool {
	tok = strings.TrimSuffix(strings.TrimSpace(tok), ".")
	for _, u := range d.Units {
		if strings.EqualFold(tok, u) {
			return true
		}
	}
	return false
}

// unitAlternation renders the unit list as a regexp alternation.
func (d Dictionary) unitAlternation() string {
	parts := make([]string, 0, len(d.Units))
	for _, u := range d.Units {
		parts = append(parts, strings.ToLower(u))
	}
	return strings.Join(parts, "|")
}

// containsWord reports whether word occurs in s on a word boundary. Both
// arguments must already be lowercased.
func containsWord(s, word string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(s[start-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		i = start + 1
	}
}

func followedByLetter(s string, i int) bool {
	return i < len(s) && isLetter(s[i])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
