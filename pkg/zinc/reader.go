package zinc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/haystack-rest/haystack-go/pkg/value"
	"github.com/haystack-rest/haystack-go/pkg/version"
)

// Decode parses a complete Zinc grid. Trailing blank lines are
// accepted; anything else after the grid is an error.
func Decode(src string) (*value.Grid, error) {
	p := &parser{src: src, line: 1, col: 1}
	g, err := p.grid(false)
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek() == '\n' {
		p.next()
	}
	if !p.eof() {
		return nil, p.errf("unexpected input after grid")
	}
	return g, nil
}

// DecodeValue parses a single Zinc literal, for scalar-only endpoints.
func DecodeValue(src string) (value.Value, error) {
	p := &parser{src: src, line: 1, col: 1}
	p.skipSpaces()
	v, err := p.val()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	for !p.eof() && p.peek() == '\n' {
		p.next()
	}
	if !p.eof() {
		return nil, p.errf("unexpected input after value")
	}
	return v, nil
}

// parser is a recursive-descent parser over a single position cursor.
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// peek returns the current byte, or 0 at EOF. All structural
// characters are ASCII, so byte-level dispatch is safe.
func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

// next consumes and returns one rune, tracking line and column.
func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *parser) consume(c byte) bool {
	if p.peek() == c {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	if !p.consume(c) {
		return p.errf("expected %q, found %q", string(c), string(p.peek()))
	}
	return nil
}

func (p *parser) skipSpaces() {
	for p.peek() == ' ' || p.peek() == '\t' {
		p.next()
	}
}

// atNestedEnd reports whether the cursor sits on the >> terminator of
// a nested grid.
func (p *parser) atNestedEnd() bool {
	return p.peek() == '>' && p.peekAt(1) == '>'
}

// grid parses meta line, column line, and rows. For nested grids the
// >> terminator is left for the caller to consume.
func (p *parser) grid(nested bool) (*value.Grid, error) {
	meta, err := p.gridMeta()
	if err != nil {
		return nil, err
	}
	if err := p.expect('\n'); err != nil {
		return nil, err
	}

	cols, err := p.colDefs()
	if err != nil {
		return nil, err
	}

	var rows []value.Dict
	for {
		if p.eof() {
			break
		}
		if nested && p.atNestedEnd() {
			break
		}
		if p.peek() == '\n' {
			// Blank line terminates the grid.
			p.next()
			break
		}
		row, err := p.row(cols)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	g, err := value.NewGrid(meta, cols, rows)
	if err != nil {
		return nil, p.errf("invalid grid: %v", err)
	}
	return g, nil
}

// gridMeta parses the first line. The ver tag must come first.
func (p *parser) gridMeta() (value.Dict, error) {
	name, err := p.tagName()
	if err != nil {
		return value.Dict{}, err
	}
	if name != "ver" {
		return value.Dict{}, p.errf("grid meta must start with ver, found %q", name)
	}
	if err := p.expect(':'); err != nil {
		return value.Dict{}, err
	}
	ver, err := p.str()
	if err != nil {
		return value.Dict{}, err
	}
	if !version.IsSupported(ver) {
		return value.Dict{}, p.errf("unsupported grid version %q", ver)
	}

	tags := map[string]value.Value{"ver": value.Str(ver)}
	if err := p.tagPairs(tags); err != nil {
		return value.Dict{}, err
	}
	meta, err := value.NewDict(tags)
	if err != nil {
		return value.Dict{}, p.errf("invalid grid meta: %v", err)
	}
	return meta, nil
}

// tagPairs parses zero or more space-separated "name" or "name:val"
// pairs into tags, stopping at a character that cannot start a tag.
func (p *parser) tagPairs(tags map[string]value.Value) error {
	for {
		if p.peek() != ' ' {
			return nil
		}
		p.skipSpaces()
		c := p.peek()
		if c < 'a' || c > 'z' {
			return nil
		}
		name, err := p.tagName()
		if err != nil {
			return err
		}
		if p.consume(':') {
			v, err := p.val()
			if err != nil {
				return err
			}
			tags[name] = v
		} else {
			tags[name] = value.Marker{}
		}
	}
}

// colDefs parses the column line including per-column meta, and the
// trailing newline (or EOF for a rowless grid).
func (p *parser) colDefs() ([]value.Col, error) {
	var cols []value.Col
	for {
		name, err := p.tagName()
		if err != nil {
			return nil, err
		}
		tags := map[string]value.Value{}
		if err := p.tagPairs(tags); err != nil {
			return nil, err
		}
		meta, err := value.NewDict(tags)
		if err != nil {
			return nil, p.errf("invalid column meta: %v", err)
		}
		col, err := value.NewCol(name, meta)
		if err != nil {
			return nil, p.errf("invalid column: %v", err)
		}
		cols = append(cols, col)
		if p.consume(',') {
			p.skipSpaces()
			continue
		}
		break
	}
	if p.eof() {
		return cols, nil
	}
	if err := p.expect('\n'); err != nil {
		return nil, err
	}
	return cols, nil
}

// row parses one data line into a Dict keyed by column name. An empty
// field means the cell is absent; the N literal means explicit null.
func (p *parser) row(cols []value.Col) (value.Dict, error) {
	cells := map[string]value.Value{}
	idx := 0
	for {
		if idx >= len(cols) {
			return value.Dict{}, p.errf("row has more cells than the %d declared columns", len(cols))
		}
		p.skipSpaces()
		c := p.peek()
		if c != ',' && c != '\n' && !p.eof() {
			v, err := p.val()
			if err != nil {
				return value.Dict{}, err
			}
			cells[cols[idx].Name()] = v
			p.skipSpaces()
		}
		idx++
		if p.consume(',') {
			continue
		}
		break
	}
	if idx != len(cols) {
		return value.Dict{}, p.errf("row has %d cells but grid declares %d columns", idx, len(cols))
	}
	if !p.eof() {
		if err := p.expect('\n'); err != nil {
			return value.Dict{}, err
		}
	}
	row, err := value.NewDict(cells)
	if err != nil {
		return value.Dict{}, p.errf("invalid row: %v", err)
	}
	return row, nil
}

// val parses any Zinc literal.
func (p *parser) val() (value.Value, error) {
	c := p.peek()
	switch {
	case c == '"':
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		return value.Str(s), nil
	case c == '`':
		return p.uri()
	case c == '@':
		return p.ref()
	case c == '[':
		return p.list()
	case c == '{':
		return p.dict()
	case c == '<':
		return p.nestedGrid()
	case c == '-' || c >= '0' && c <= '9':
		return p.numberLike()
	case c >= 'A' && c <= 'Z':
		return p.word()
	case p.eof():
		return nil, p.errf("unexpected end of input, expected a value")
	default:
		return nil, p.errf("unexpected character %q, expected a value", string(c))
	}
}

func (p *parser) tagName() (string, error) {
	c := p.peek()
	if c < 'a' || c > 'z' {
		return "", p.errf("expected tag name, found %q", string(c))
	}
	start := p.pos
	for {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.next()
			continue
		}
		break
	}
	return p.src[start:p.pos], nil
}

// str parses a double-quoted string with backslash escapes.
func (p *parser) str() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated string")
		}
		r := p.next()
		switch r {
		case '"':
			return sb.String(), nil
		case '\n':
			return "", p.errf("newline in string literal")
		case '\\':
			esc, err := p.escape('"')
			if err != nil {
				return "", err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(r)
		}
	}
}

// escape parses the character after a backslash. quote is the
// enclosing quote character, accepted as an escapable char.
func (p *parser) escape(quote rune) (rune, error) {
	if p.eof() {
		return 0, p.errf("unterminated escape sequence")
	}
	r := p.next()
	switch r {
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '$':
		return '$', nil
	case quote:
		return quote, nil
	case 'u':
		var code int
		for i := 0; i < 4; i++ {
			d := p.peek()
			v := hexDigit(d)
			if v < 0 {
				return 0, p.errf("invalid unicode escape")
			}
			p.next()
			code = code<<4 | v
		}
		return rune(code), nil
	default:
		return 0, p.errf("invalid escape sequence \\%s", string(r))
	}
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func (p *parser) uri() (value.Value, error) {
	if err := p.expect('`'); err != nil {
		return nil, err
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return nil, p.errf("unterminated uri")
		}
		r := p.next()
		switch r {
		case '`':
			return value.Uri(sb.String()), nil
		case '\n':
			return nil, p.errf("newline in uri literal")
		case '\\':
			if p.eof() {
				return nil, p.errf("unterminated escape sequence")
			}
			switch e := p.next(); e {
			case '`', '\\':
				sb.WriteRune(e)
			default:
				// URI-specific escapes like \# pass through verbatim.
				sb.WriteRune('\\')
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (p *parser) ref() (value.Value, error) {
	if err := p.expect('@'); err != nil {
		return nil, err
	}
	start := p.pos
	for {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '_' || c == ':' || c == '-' || c == '.' || c == '~' {
			p.next()
			continue
		}
		break
	}
	id := p.src[start:p.pos]

	dis := ""
	if p.peek() == ' ' && p.peekAt(1) == '"' {
		p.next()
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		dis = s
	}

	r, err := value.NewRef(id, dis)
	if err != nil {
		return nil, p.errf("invalid ref: %v", err)
	}
	return r, nil
}

func (p *parser) list() (value.Value, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	out := value.List{}
	p.skipSpaces()
	if p.consume(']') {
		return out, nil
	}
	for {
		v, err := p.val()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		p.skipSpaces()
		if p.consume(',') {
			p.skipSpaces()
			continue
		}
		if p.consume(']') {
			return out, nil
		}
		return nil, p.errf("expected ',' or ']' in list")
	}
}

func (p *parser) dict() (value.Value, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	tags := map[string]value.Value{}
	for {
		p.skipSpaces()
		if p.consume('}') {
			d, err := value.NewDict(tags)
			if err != nil {
				return nil, p.errf("invalid dict: %v", err)
			}
			return d, nil
		}
		if p.eof() {
			return nil, p.errf("unterminated dict")
		}
		name, err := p.tagName()
		if err != nil {
			return nil, err
		}
		if p.consume(':') {
			v, err := p.val()
			if err != nil {
				return nil, err
			}
			tags[name] = v
		} else {
			tags[name] = value.Marker{}
		}
	}
}

func (p *parser) nestedGrid() (value.Value, error) {
	if p.peekAt(1) != '<' {
		return nil, p.errf("unexpected character '<', expected a value")
	}
	p.next()
	p.next()
	p.consume('\n')

	g, err := p.grid(true)
	if err != nil {
		return nil, err
	}
	for p.peek() == '\n' {
		p.next()
	}
	if !p.atNestedEnd() {
		return nil, p.errf("expected '>>' to close nested grid")
	}
	p.next()
	p.next()
	return g, nil
}

// word parses literals starting with an uppercase letter: the
// single-letter sentinels, NA, NaN, INF, coordinates and XStrs.
func (p *parser) word() (value.Value, error) {
	start := p.pos
	for {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.next()
			continue
		}
		break
	}
	w := p.src[start:p.pos]

	switch w {
	case "T":
		return value.Bool(true), nil
	case "F":
		return value.Bool(false), nil
	case "M":
		return value.Marker{}, nil
	case "R":
		return value.Remove{}, nil
	case "N":
		return value.Null{}, nil
	case "NA":
		return value.NA{}, nil
	case "NaN":
		return value.Num(math.NaN()), nil
	case "INF":
		return value.Num(math.Inf(1)), nil
	}

	if p.peek() != '(' {
		return nil, p.errf("unknown literal %q", w)
	}
	p.next()

	if w == "C" {
		return p.coordBody()
	}

	payload, err := p.str()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	x, err := value.NewXStr(w, payload)
	if err != nil {
		return nil, p.errf("invalid xstr: %v", err)
	}
	return x, nil
}

func (p *parser) coordBody() (value.Value, error) {
	lat, err := p.bareFloat()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	lng, err := p.bareFloat()
	if err != nil {
		return nil, err
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	c, err := value.NewCoord(lat, lng)
	if err != nil {
		return nil, p.errf("invalid coord: %v", err)
	}
	return c, nil
}

func (p *parser) bareFloat() (float64, error) {
	start := p.pos
	p.consume('-')
	for {
		c := p.peek()
		if c >= '0' && c <= '9' || c == '.' {
			p.next()
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errf("invalid number %q", p.src[start:p.pos])
	}
	return f, nil
}

// numberLike parses a number, date, time, or date-time. The leading
// digit pattern disambiguates: four digits then '-' is a date, two
// digits then ':' is a time, anything else is a number.
func (p *parser) numberLike() (value.Value, error) {
	if strings.HasPrefix(p.src[p.pos:], "-INF") && !isWordByte(p.peekAt(4)) {
		for i := 0; i < 4; i++ {
			p.next()
		}
		return value.Num(math.Inf(-1)), nil
	}

	if p.peek() != '-' {
		digits := 0
		for isDigit(p.peekAt(digits)) {
			digits++
		}
		if digits == 4 && p.peekAt(4) == '-' {
			return p.dateOrDateTime()
		}
		if digits == 2 && p.peekAt(2) == ':' {
			return p.time()
		}
	}
	return p.number()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func (p *parser) digits(n int) (int, error) {
	v := 0
	for i := 0; i < n; i++ {
		c := p.peek()
		if !isDigit(c) {
			return 0, p.errf("expected digit")
		}
		p.next()
		v = v*10 + int(c-'0')
	}
	return v, nil
}

func (p *parser) dateOrDateTime() (value.Value, error) {
	year, err := p.digits(4)
	if err != nil {
		return nil, err
	}
	if err := p.expect('-'); err != nil {
		return nil, err
	}
	month, err := p.digits(2)
	if err != nil {
		return nil, err
	}
	if err := p.expect('-'); err != nil {
		return nil, err
	}
	day, err := p.digits(2)
	if err != nil {
		return nil, err
	}

	if p.peek() != 'T' {
		d, err := value.NewDate(year, time.Month(month), day)
		if err != nil {
			return nil, p.errf("invalid date: %v", err)
		}
		return d, nil
	}
	p.next()

	t, err := p.timeFields()
	if err != nil {
		return nil, err
	}

	// Zone: Z, or ±hh:mm, optionally followed by the zone name.
	var offset int
	tz := ""
	switch p.peek() {
	case 'Z':
		p.next()
		tz = "UTC"
	case '+', '-':
		sign := 1
		if p.next() == '-' {
			sign = -1
		}
		oh, err := p.digits(2)
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		om, err := p.digits(2)
		if err != nil {
			return nil, err
		}
		offset = sign * (oh*3600 + om*60)
		tz = fmt.Sprintf("GMT%+d", -offset/3600)
	default:
		return nil, p.errf("expected timezone offset in date-time")
	}

	if p.peek() == ' ' && p.peekAt(1) >= 'A' && p.peekAt(1) <= 'Z' {
		p.next()
		start := p.pos
		for {
			c := p.peek()
			if isWordByte(c) || c == '-' || c == '+' || c == '/' {
				p.next()
				continue
			}
			break
		}
		tz = p.src[start:p.pos]
	}

	loc := time.UTC
	if offset != 0 {
		loc = time.FixedZone("", offset)
	}
	instant := time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanos(), loc)
	dt, err := value.NewDateTime(instant, tz)
	if err != nil {
		return nil, p.errf("invalid date-time: %v", err)
	}
	return dt, nil
}

func (p *parser) time() (value.Value, error) {
	t, err := p.timeFields()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) timeFields() (value.Time, error) {
	hour, err := p.digits(2)
	if err != nil {
		return value.Time{}, err
	}
	if err := p.expect(':'); err != nil {
		return value.Time{}, err
	}
	minute, err := p.digits(2)
	if err != nil {
		return value.Time{}, err
	}
	second := 0
	nanos := 0
	if p.consume(':') {
		second, err = p.digits(2)
		if err != nil {
			return value.Time{}, err
		}
		if p.consume('.') {
			scale := 100_000_000
			seen := 0
			for isDigit(p.peek()) {
				nanos += int(p.peek()-'0') * scale
				scale /= 10
				seen++
				p.next()
			}
			if seen == 0 {
				return value.Time{}, p.errf("expected fractional seconds after '.'")
			}
		}
	}
	t, err := value.NewTime(hour, minute, second, nanos)
	if err != nil {
		return value.Time{}, p.errf("invalid time: %v", err)
	}
	return t, nil
}

// number parses a numeric literal with optional underscores, decimal
// part, exponent and unit suffix.
func (p *parser) number() (value.Value, error) {
	start := p.pos
	p.consume('-')
	sawDigit := false
	for {
		c := p.peek()
		if isDigit(c) || c == '_' {
			sawDigit = sawDigit || isDigit(c)
			p.next()
			continue
		}
		if c == '.' && isDigit(p.peekAt(1)) {
			p.next()
			continue
		}
		// Exponent only when followed by a digit or a signed digit,
		// otherwise 'e' starts a unit like "erg".
		if (c == 'e' || c == 'E') && (isDigit(p.peekAt(1)) ||
			(p.peekAt(1) == '+' || p.peekAt(1) == '-') && isDigit(p.peekAt(2))) {
			p.next()
			if p.peek() == '+' || p.peek() == '-' {
				p.next()
			}
			continue
		}
		break
	}
	if !sawDigit {
		return nil, p.errf("invalid number")
	}
	lit := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, p.errf("invalid number %q", lit)
	}

	unitStart := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if isUnitRune(r) {
			p.pos += size
			p.col++
			continue
		}
		break
	}
	return value.NumUnit(f, p.src[unitStart:p.pos]), nil
}

// isUnitRune reports whether r may appear in a unit symbol. Any rune
// outside ASCII is allowed, covering symbols like ° and ².
func isUnitRune(r rune) bool {
	if r > 127 {
		return true
	}
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
		r == '%' || r == '_' || r == '/' || r == '$'
}
