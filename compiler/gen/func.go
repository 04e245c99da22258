package gen

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

var (
	rules = ruleset()
	// wordRun is a letter followed by letters and digits.
	wordRun = regexp.MustCompile(`\pL[\pL\pN]*`)
)

func ruleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, w := range []string{"ACL", "API", "ASCII", "DB", "DNS", "HTML", "HTTP", "ID", "IP", "JSON", "SQL", "URL", "UUID", "XML"} {
		r.AddAcronym(w)
	}
	return r
}

// Pascal joins the letter runs of s, upper-casing the first letter of every
// run and leaving the rest untouched:
//
//	user_name	=> UserName
//	userName	=> UserName
//	2fa_code	=> FaCode
func Pascal(s string) string {
	var b strings.Builder
	for _, run := range wordRun.FindAllString(s, -1) {
		b.WriteString(exported(run))
	}
	return b.String()
}

// Exported upper-cases the first letter of a name.
func Exported(s string) string {
	return exported(s)
}

func exported(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Snake converts the given name to snake case, e.g. UserInfo => user_info.
func Snake(s string) string {
	return rules.Underscore(s)
}

// Camel converts a column name to a property name, e.g. user_name => userName.
func Camel(s string) string {
	return rules.CamelizeDownFirst(s)
}

// Camelize converts a table name to a domain name, e.g. user_info => UserInfo.
func Camelize(s string) string {
	return rules.Camelize(s)
}
