package phpserial

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	nullToken = iota
	boolToken
	intToken
	floatToken
	stringToken
	arrayOpenToken
	arrayCloseToken
)

var (
	nullMatcher       = parsly.NewToken(nullToken, "N;", matcher.NewFragment("N;"))
	boolMatcher       = parsly.NewToken(boolToken, "b:0|1;", &boolTokenMatcher{})
	intMatcher        = parsly.NewToken(intToken, "i:<int>;", &numberMatcher{tag: 'i'})
	floatMatcher      = parsly.NewToken(floatToken, "d:<float>;", &numberMatcher{tag: 'd'})
	arrayOpenMatcher  = parsly.NewToken(arrayOpenToken, "a:<count>:{", &arrayOpenTokenMatcher{})
	arrayCloseMatcher = parsly.NewToken(arrayCloseToken, "}", matcher.NewByte('}'))

	scanStringMatcher     = parsly.NewToken(stringToken, `s:<len>:"...";`, &stringMatcher{mode: scanLength})
	preferStringMatcher   = parsly.NewToken(stringToken, `s:<len>:"...";`, &stringMatcher{mode: preferLength})
	declaredStringMatcher = parsly.NewToken(stringToken, `s:<len>:"...";`, &stringMatcher{mode: exactLength})
)

// stringTokenFor returns string token matcher for the recovery policy
func stringTokenFor(policy StringPolicy) *parsly.Token {
	if policy == PreferDeclaredLength {
		return preferStringMatcher
	}
	return scanStringMatcher
}

// recoveryTokens returns tokens accepted by the recovery scanner
func recoveryTokens(policy StringPolicy) []*parsly.Token {
	return []*parsly.Token{arrayCloseMatcher, stringTokenFor(policy), intMatcher, boolMatcher, arrayOpenMatcher, nullMatcher, floatMatcher}
}

var valueTokens = []*parsly.Token{declaredStringMatcher, intMatcher, boolMatcher, arrayOpenMatcher, nullMatcher, floatMatcher}

var keyTokens = []*parsly.Token{declaredStringMatcher, intMatcher}
