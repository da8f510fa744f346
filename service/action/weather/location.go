package weather

import (
	"strconv"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	numberCode
	commaCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
)

func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

// numberMatcher matches an optionally signed decimal number
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}

	matched := 0
	if input[pos] == '-' || input[pos] == '+' {
		matched++
	}

	digits := 0
	dots := 0
	for i := pos + matched; i < size; i++ {
		if isDigit(input[i]) {
			digits++
			matched++
			continue
		}
		if input[i] == '.' && dots == 0 && digits > 0 {
			dots++
			matched++
			continue
		}
		break
	}

	if digits == 0 {
		return 0
	}
	return matched
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseCoordinates parses a "lat,lon" pair; ok is false when the input
// does not have the coordinate form and should be treated as a city name.
func ParseCoordinates(input string) (latitude, longitude float64, ok bool) {
	data := []byte(strings.TrimSpace(input))
	cursor := parsly.NewCursor("", data, 0)

	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return 0, 0, false
	}
	latText := matched.Text(cursor)

	matched = cursor.MatchAfterOptional(whitespaceToken, commaToken)
	if matched.Code != commaToken.Code {
		return 0, 0, false
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return 0, 0, false
	}
	lonText := matched.Text(cursor)

	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return 0, 0, false
	}

	latitude, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return 0, 0, false
	}
	longitude, err = strconv.ParseFloat(lonText, 64)
	if err != nil {
		return 0, 0, false
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return 0, 0, false
	}
	return latitude, longitude, true
}
