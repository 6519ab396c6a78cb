package visprog

import (
	"fmt"
	"strings"
)

// Statement is one line of a symbolic program: VAR=OP(key=value,...). Argument values
// may be wrapped in single quotes, which protects commas and equals signs inside them.
type Statement struct {
	Variable string
	Op       string
	Args     map[string]string
}

type Program struct {
	Statements []Statement
}

// Parse parses a symbolic program, one statement per line. Empty lines are skipped.
func Parse(text string) (*Program, error) {
	var program Program
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		statement, err := parseStatement(line)
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, statement)
	}
	if len(program.Statements) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	return &program, nil
}

func parseStatement(line string) (Statement, error) {
	variable, call, found := strings.Cut(line, "=")
	if !found {
		return Statement{}, fmt.Errorf("malformed statement (no assignment): %s", line)
	}
	variable = strings.TrimSpace(variable)
	call = strings.TrimSpace(call)
	openIndex := strings.Index(call, "(")
	if variable == "" || openIndex <= 0 || !strings.HasSuffix(call, ")") {
		return Statement{}, fmt.Errorf("malformed statement: %s", line)
	}
	op := strings.TrimSpace(call[:openIndex])
	args := make(map[string]string)
	for _, part := range splitArgs(call[openIndex+1 : len(call)-1]) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return Statement{}, fmt.Errorf("malformed argument \"%s\" in statement: %s", part, line)
		}
		args[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return Statement{Variable: variable, Op: op, Args: args}, nil
}

// splitArgs splits an argument list on commas outside single quotes.
func splitArgs(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '\'':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		parts = append(parts, current.String())
	}
	return parts
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}
