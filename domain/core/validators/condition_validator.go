package validators

import "strings"

// Operators accepted between condition variables.
const (
	OperatorAnd = "AND"
	OperatorOr  = "OR"
)

// VariablePrefix starts every condition variable.
const VariablePrefix = '$'

// IsValidCondition reports whether expression is a sequence of $-variables
// joined by single-space separated AND/OR operators, e.g. "$a AND $b OR $c".
// The empty expression carries no tokens and is accepted.
func IsValidCondition(expression string) bool {
	if expression == "" {
		return true
	}

	tokens := strings.Split(expression, " ")
	if len(tokens)%2 == 0 {
		return false
	}

	for i, token := range tokens {
		if i%2 == 1 {
			if token != OperatorAnd && token != OperatorOr {
				return false
			}
			continue
		}
		if token == "" || token[0] != VariablePrefix {
			return false
		}
	}
	return true
}
