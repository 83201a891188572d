package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rowPattern pairs one structural matcher with the mapping of its named
// capture groups onto product fields. The cascade is a flat, ordered table:
// adding support for a new invoice layout means adding one entry, not a new
// branch of parsing code.
type rowPattern struct {
	name string
	re   *regexp.Regexp
}

// groups maps the named captures of a match.
func (p rowPattern) groups(m []string) map[string]string {
	out := make(map[string]string)
	for i, g := range p.re.SubexpNames() {
		if g == "" || i >= len(m) || m[i] == "" {
			continue
		}
		out[g] = m[i]
	}
	return out
}

// buildCascade compiles the ordered pattern table, most structurally
// specific first. Column layouts vary per printer; the trailing generic
// entry accepts any row carrying at least one decimal token and leaves all
// field recovery to the uniform rules in parseRow.
func buildCascade(dict Dictionary) []rowPattern {
	const (
		sep  = `[\t ]+`
		word = `\pL[\pL&.\-]*`
		num  = decimalPat
	)
	unit := `(?i:(?P<unit>(?:` + dict.unitAlternation() + `)\.?))`

	p := func(name, expr string) rowPattern {
		return rowPattern{name: name, re: regexp.MustCompile(expr)}
	}

	return []rowPattern{
		p("serial-company-code-name-qty-unit-price-amount",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+`(?P<code>\d{1,10})`+sep+
				`(?P<name>\pL.*?)`+sep+`(?P<qty>\d+)`+sep+unit+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("serial-company-code-name-qty-price-amount",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+`(?P<code>\d{1,10})`+sep+
				`(?P<name>\pL.*?)`+sep+`(?P<qty>\d+)`+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("serial-company-code-qty-unit-price-amount",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+`(?P<code>\d{1,10})`+sep+
				`(?P<qty>\d+)`+sep+unit+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("serial-company-name-qty-unit-price-amount",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+
				`(?P<name>\pL.*?)`+sep+`(?P<qty>\d+)`+sep+unit+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("serial-company-code-price-amount-trailing-name",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+`(?P<code>\d{1,10})`+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)`+
				`(?:`+sep+`(?P<name>\pL.*))?$`),
		p("serial-company-name-price-amount",
			`^(?P<serial>\d+)`+sep+`(?P<company>`+word+`)`+sep+
				`(?P<name>\pL.*?)`+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("company-name-price-amount",
			`^(?P<company>`+word+`)(?:`+sep+`(?P<name>\pL.*?))?`+sep+
				`(?P<price>`+num+`)`+sep+`(?P<amount>`+num+`)$`),
		p("name-price-amount",
			`^(?P<name>\pL.*?)`+sep+
				`(?P<price>`+num+`)(?:`+sep+`(?P<amount>`+num+`))?$`),
		p("generic",
			`^.*`+num+`.*$`),
	}
}

var (
	percentRe  = regexp.MustCompile(`(\d{1,2}(?:\.\d+)?)\s*%`)
	codeTokRe  = regexp.MustCompile(`^\d{4,10}$`)
	intTokRe   = regexp.MustCompile(`^\d+$`)
	capTokRe   = regexp.MustCompile(`^\p{Lu}`)
	commaStrip = strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", "rs.", "", "rs", "")
)

// parseRow runs the cascade over one reconstructed row and applies the
// uniform field-extraction rules to the winning matcher's captures.
// prevCompany is the company of the last accepted row, inherited by
// accessory rows; seq numbers the record within the current Extract call.
// A row lacking both an identifier and a usable price is rejected: dropping
// a malformed row is always preferred over fabricating data.
func (e *Extractor) parseRow(row RawRow, prevCompany string, seq int) (ProductRecord, bool) {
	joined := strings.Trim(row.Joined(), " \t")

	var g map[string]string
	for _, p := range e.cascade {
		if m := p.re.FindStringSubmatch(joined); m != nil {
			g = p.groups(m)
			break
		}
	}
	if g == nil {
		return ProductRecord{}, false
	}

	price, amount, ok := priceAndAmount(g, joined)
	if !ok {
		return ProductRecord{}, false
	}

	rec := ProductRecord{
		ID:         fmt.Sprintf("P%d", seq),
		UnitPrice:  price,
		LineAmount: amount,
	}

	switch {
	case matchDictCompany(e.dict, joined, &rec):
	case e.dict.IsAccessory(joined) && prevCompany != "":
		rec.CompanyName = prevCompany
	case g["company"] != "":
		rec.CompanyName = g["company"]
	default:
		rec.CompanyName = firstCapitalizedToken(joined)
	}

	rec.SerialNumber = g["code"]
	if rec.SerialNumber == "" {
		rec.SerialNumber = firstCodeToken(joined, g)
	}

	if q, explicit := e.quantityOf(g, joined); explicit {
		rec.Quantity = q
		rec.quantityExplicit = true
	}

	if m := percentRe.FindStringSubmatch(joined); m != nil {
		rec.GSTRate, _ = strconv.ParseFloat(m[1], 64)
	}

	name := cleanupName(g["name"])
	if name == "" {
		name = nameBetween(joined, rec.CompanyName, g)
	}
	if len(name) < 2 {
		name = fmt.Sprintf("Product %d", seq)
		rec.NeedsManualEntry = true
	}
	rec.Name = name

	if rec.CompanyName == "" && rec.NeedsManualEntry {
		return ProductRecord{}, false
	}
	return rec, true
}

func matchDictCompany(dict Dictionary, joined string, rec *ProductRecord) bool {
	c, ok := dict.MatchCompany(joined)
	if ok {
		rec.CompanyName = c
	}
	return ok
}

// priceAndAmount resolves the unit price and line amount: the captured
// pair when the winning pattern had one, otherwise the last two decimal
// tokens in the row. A lone decimal serves as both.
func priceAndAmount(g map[string]string, joined string) (float64, float64, bool) {
	if g["price"] != "" {
		p := parseAmount(g["price"])
		a := p
		if g["amount"] != "" {
			a = parseAmount(g["amount"])
		}
		return p, a, true
	}
	decs := decimalRe.FindAllString(joined, -1)
	switch len(decs) {
	case 0:
		return 0, 0, false
	case 1:
		v := parseAmount(decs[0])
		return v, v, true
	default:
		return parseAmount(decs[len(decs)-2]), parseAmount(decs[len(decs)-1]), true
	}
}

// quantityOf resolves an explicit quantity: the captured group first, then
// a number immediately followed by a unit token anywhere in the row.
func (e *Extractor) quantityOf(g map[string]string, joined string) (int, bool) {
	if q := g["qty"]; q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			return n, true
		}
	}
	if m := e.qtyUnitRe.FindStringSubmatch(joined); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// firstCodeToken finds the first standalone 4-10 digit token that is not
// the row number and not the quantity. Decimal-formatted tokens never
// qualify, so prices and amounts cannot be mistaken for a code.
func firstCodeToken(joined string, g map[string]string) string {
	toks := splitTokens(joined)
	for i, t := range toks {
		if i == 0 && intTokRe.MatchString(t) {
			continue // row number
		}
		if t == g["qty"] {
			continue
		}
		if codeTokRe.MatchString(t) {
			return t
		}
	}
	return ""
}

// firstCapitalizedToken returns the first capitalized token after the row
// number, used verbatim when the company dictionary has no hit.
func firstCapitalizedToken(joined string) string {
	toks := splitTokens(joined)
	for i, t := range toks {
		if i == 0 && intTokRe.MatchString(t) {
			continue
		}
		if capTokRe.MatchString(t) {
			return t
		}
	}
	return ""
}

// nameBetween recovers the product name as the span between the end of the
// recognized company token and the first consumed numeric or code token.
func nameBetween(joined, company string, g map[string]string) string {
	s := joined
	if company != "" {
		if i := strings.Index(strings.ToLower(s), strings.ToLower(company)); i >= 0 {
			s = s[i+len(company):]
		}
	}
	if loc := decimalRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	if code := g["code"]; code != "" {
		if i := strings.Index(s, code); i >= 0 {
			s = s[:i]
		}
	}
	return cleanupName(s)
}

func cleanupName(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " -:,.")
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}

// parseAmount coerces a formatted numeric string (thousands separators,
// currency marks) to a float64. Unparseable input yields 0.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(commaStrip.Replace(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
