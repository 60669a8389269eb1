package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// A Name is a hierarchical name split into tokens.
type Name struct {
	Tokens []Token
}

// Token is one dot-separated element of a name.
type Token struct {
	ElemName string
	Index    []int
}

// String recomposes the name.
func (n Name) String() string {
	parts := make([]string, len(n.Tokens))
	for i, t := range n.Tokens {
		parts[i] = t.String()
	}

	return strings.Join(parts, ".")
}

// String recomposes the token.
func (t Token) String() string {
	s := t.ElemName
	for _, i := range t.Index {
		s += "[" + strconv.Itoa(i) + "]"
	}

	return s
}

// Parent returns the name without its last token. The parent of a single
// token name is the empty name.
func (n Name) Parent() Name {
	if len(n.Tokens) <= 1 {
		return Name{}
	}

	return Name{Tokens: n.Tokens[:len(n.Tokens)-1]}
}

// Parse splits a name string into tokens.
func Parse(s string) (Name, error) {
	tokens := strings.Split(s, ".")
	name := Name{Tokens: make([]Token, len(tokens))}

	for i, token := range tokens {
		t, err := parseToken(token)
		if err != nil {
			return Name{}, fmt.Errorf("name %q: %w", s, err)
		}

		name.Tokens[i] = t
	}

	return name, nil
}

func parseToken(token string) (Token, error) {
	if err := bracketsMustMatch(token); err != nil {
		return Token{}, err
	}

	ts := strings.Split(token, "[")
	indices := make([]int, len(ts)-1)

	for i := 1; i < len(ts); i++ {
		if !strings.HasSuffix(ts[i], "]") {
			return Token{}, fmt.Errorf("malformed index in %q", token)
		}

		index, err := strconv.Atoi(strings.TrimSuffix(ts[i], "]"))
		if err != nil {
			return Token{}, fmt.Errorf("index in %q must be an integer", token)
		}

		indices[i-1] = index
	}

	return Token{ElemName: ts[0], Index: indices}, nil
}

func bracketsMustMatch(token string) error {
	open := 0

	for _, c := range token {
		switch c {
		case '[':
			open++
			if open > 1 {
				return fmt.Errorf("nested bracket in %q", token)
			}
		case ']':
			open--
			if open < 0 {
				return fmt.Errorf("unmatched bracket in %q", token)
			}
		}
	}

	if open != 0 {
		return fmt.Errorf("unmatched bracket in %q", token)
	}

	return nil
}

// Validate checks a name against the naming convention:
//  1. Tokens are separated by single dots and are never empty.
//  2. Tokens are capitalized CamelCase and contain no '_', '-', or quotes.
//  3. Series elements use square-bracket indices.
func Validate(s string) error {
	n, err := Parse(s)
	if err != nil {
		return err
	}

	for _, t := range n.Tokens {
		if err := tokenMustBeValid(t); err != nil {
			return fmt.Errorf("name %q: %w", s, err)
		}
	}

	return nil
}

func tokenMustBeValid(t Token) error {
	if t.ElemName == "" {
		return fmt.Errorf("element name must not be empty")
	}

	for _, c := range []string{"_", "\"", "'", "-"} {
		if strings.Contains(t.ElemName, c) {
			return fmt.Errorf("element name must not contain %s", c)
		}
	}

	if t.ElemName[0] < 'A' || t.ElemName[0] > 'Z' {
		return fmt.Errorf("element name must start with a capital letter")
	}

	return nil
}

// NameMustBeValid panics if the name does not follow the naming convention.
func NameMustBeValid(s string) {
	if err := Validate(s); err != nil {
		panic(err.Error())
	}
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an indexed element name.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}

// BuildNameWithMultiDimensionalIndex joins a parent name and an element name
// with several indices.
func BuildNameWithMultiDimensionalIndex(
	parentName, elementName string,
	index []int,
) string {
	name := BuildName(parentName, elementName)

	for _, i := range index {
		name += "[" + strconv.Itoa(i) + "]"
	}

	return name
}
