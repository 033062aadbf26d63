package internal

import (
	"fmt"
	"strings"
)

// Code identifies a diagnostic kind. Codes are part of the public contract: tools match
// on Code (or its ID string), never on the rendered message. New codes are appended
// before codeCount; existing values never change.
type Code int

const (
	// Lexical errors.
	ErrUnexpectedCharacter Code = iota
	ErrUnterminatedString
	ErrInvalidNumber
	ErrInvalidEscape
	ErrUnterminatedComment
	ErrUnterminatedRegex
	ErrUnreadableSource

	// Parser errors.
	ErrUnexpectedToken
	ErrExpectedClosingBrace
	ErrExpectedClosingParen
	ErrExpectedClosingBracket
	ErrExpectedExpression
	ErrExpectedIdentifier
	ErrExpectedType
	ErrMissingInitializer
	ErrInvalidAssignmentTarget
	ErrExpectedToken
	ErrInvalidImportPath
	ErrExpectedBlock
	ErrUnexpectedEndOfInput
	ErrMisplacedClause
	ErrExpectedLoopBinding
	ErrExpectedFunction

	// Semantic errors.
	ErrUndefinedVariable
	ErrDuplicateDefinition
	ErrImmutableAssignment
	ErrTypeMismatch
	ErrReturnTypeMismatch
	ErrIncomparableTypes
	ErrCedeOutsideAsync
	ErrDefaultOnBorrowedParameter
	ErrRequiredAfterOptional
	ErrMissingFunctionBody
	ErrCircularImport
	ErrModuleNotFound
	ErrNotExported
	ErrModuleHasErrors
	ErrModifierConflict
	ErrUnknownType
	ErrLoopControlOutsideLoop
	ErrReturnOutsideFunction
	ErrEgoOutsideGenus

	codeCount
)

type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Phase names the front-end stage that owns a code.
type Phase int

const (
	LexicalPhase Phase = iota
	SyntaxPhase
	SemanticPhase
)

func (p Phase) String() string {
	switch p {
	case LexicalPhase:
		return "lexical"
	case SyntaxPhase:
		return "syntax"
	}
	return "semantic"
}

type catalogEntry struct {
	id     string
	phase  Phase
	format string
	help   string
}

var catalog = [...]catalogEntry{
	ErrUnexpectedCharacter: {"L001", LexicalPhase, "unexpected character %q",
		"remove the character; only ASCII operators and unicode letters are valid outside strings"},
	ErrUnterminatedString: {"L002", LexicalPhase, "unterminated string literal",
		"close the string with the same quote it was opened with before the end of the line"},
	ErrInvalidNumber: {"L003", LexicalPhase, "invalid number literal %q",
		"numbers are decimal (1_000, 2.5, 1e9) or hexadecimal (0xff)"},
	ErrInvalidEscape: {"L004", LexicalPhase, "invalid escape sequence %q",
		`valid escapes are \n \t \r \0 \\ \" \' and \uXXXX`},
	ErrUnterminatedComment: {"L005", LexicalPhase, "unterminated block comment",
		"close every '/*' with a matching '*/'"},
	ErrUnterminatedRegex: {"L006", LexicalPhase, "unterminated regex literal",
		"close the pattern with '/' before the end of the line"},
	ErrUnreadableSource: {"L007", LexicalPhase, "cannot read source: %v",
		"check that the file exists and is readable"},

	ErrUnexpectedToken: {"P001", SyntaxPhase, "unexpected %s",
		"remove the token or finish the statement before it"},
	ErrExpectedClosingBrace: {"P002", SyntaxPhase, "expected '}' to close the block opened at line %d",
		"add the missing closing delimiter '}'"},
	ErrExpectedClosingParen: {"P003", SyntaxPhase, "expected ')' to close '(' opened at line %d, found %s",
		"add the missing closing delimiter ')'"},
	ErrExpectedClosingBracket: {"P004", SyntaxPhase, "expected ']' to close '[' opened at line %d, found %s",
		"add the missing closing delimiter ']'"},
	ErrExpectedExpression: {"P005", SyntaxPhase, "expected an expression, found %s",
		"an expression is a literal, a name, a call or an operator applied to those"},
	ErrExpectedIdentifier: {"P006", SyntaxPhase, "expected a name, found %s",
		"names start with a letter or '_' and must not be keywords"},
	ErrExpectedType: {"P007", SyntaxPhase, "expected a type name, found %s",
		"write a type such as numerus, textus, lista<numerus> or the name of a genus"},
	ErrMissingInitializer: {"P008", SyntaxPhase, "'fixum' binding %q needs an initializer",
		"give the constant a value with '=' or declare it with 'varia'"},
	ErrInvalidAssignmentTarget: {"P009", SyntaxPhase, "cannot assign to this expression",
		"only names, members (a.b) and indexes (a[i]) can be assigned"},
	ErrExpectedToken: {"P010", SyntaxPhase, "expected %s, found %s",
		"insert the expected token"},
	ErrInvalidImportPath: {"P011", SyntaxPhase, "import source must be a string literal",
		`write the module path in quotes: ex "./modulus" importa nomen`},
	ErrExpectedBlock: {"P012", SyntaxPhase, "expected '{' to open a block, found %s",
		"wrap the body in braces"},
	ErrUnexpectedEndOfInput: {"P013", SyntaxPhase, "unexpected end of input, expected %s",
		"the file ends in the middle of a construct"},
	ErrMisplacedClause: {"P014", SyntaxPhase, "%q cannot start a statement",
		"this keyword only continues a construct (si, elige, tempta, probandum)"},
	ErrExpectedLoopBinding: {"P015", SyntaxPhase, "expected 'pro' after the iteration source, found %s",
		"write: ex collection pro item { ... }"},
	ErrExpectedFunction: {"P016", SyntaxPhase, "modifier %q must be followed by 'functio', found %s",
		"modifiers apply to function declarations only"},

	ErrUndefinedVariable: {"S001", SemanticPhase, "undefined variable %q",
		"declare it with 'fixum' or 'varia' before use, or import it"},
	ErrDuplicateDefinition: {"S002", SemanticPhase, "%q is already defined in this scope",
		"rename one of the bindings; shadowing is only allowed in an inner block"},
	ErrImmutableAssignment: {"S003", SemanticPhase, "cannot assign to immutable binding %q",
		"declare the binding with 'varia' (or the parameter with 'in') to allow assignment"},
	ErrTypeMismatch: {"S004", SemanticPhase, "type mismatch: expected %s, found %s",
		"convert the value or change the annotation"},
	ErrReturnTypeMismatch: {"S005", SemanticPhase, "function %q returns %s, found %s",
		"return a value of the declared type or change the signature"},
	ErrIncomparableTypes: {"S006", SemanticPhase, "cannot compare %s with %s using %q",
		"compare values of the same type; numbers compare with numbers, text with text"},
	ErrCedeOutsideAsync: {"S007", SemanticPhase, "'cede' used outside an async or generator function",
		"mark the enclosing function with 'fiet'/'fiunt' (or 'futura'/'cursor')"},
	ErrDefaultOnBorrowedParameter: {"S008", SemanticPhase, "parameter %q is borrowed with 'de' and cannot have a default value",
		"remove the default value or the 'de' marker"},
	ErrRequiredAfterOptional: {"S009", SemanticPhase, "required parameter %q follows an optional parameter",
		"move optional parameters to the end of the list"},
	ErrMissingFunctionBody: {"S010", SemanticPhase, "function %q has no body",
		"add a body or mark the declaration 'externa'"},
	ErrCircularImport: {"S011", SemanticPhase, "circular import: %s",
		"break the cycle by moving the shared declarations into a third module"},
	ErrModuleNotFound: {"S012", SemanticPhase, "cannot load module %q: %v",
		"check the import path; relative paths resolve from the importing file"},
	ErrNotExported: {"S013", SemanticPhase, "module %q does not export %q",
		"mark the declaration 'exporta' in that module or import another name"},
	ErrModuleHasErrors: {"S014", SemanticPhase, "module %q has syntax errors",
		"fix the errors reported for that file"},
	ErrModifierConflict: {"S015", SemanticPhase, "modifier %q conflicts with return verb %q",
		"fiet/fient imply 'futura', fiunt/fient imply 'cursor'; drop the modifier or change the verb"},
	ErrUnknownType: {"S016", SemanticPhase, "unknown type %q",
		"use a built-in type (numerus, fractus, textus, bivalens, lista, tabula, ...) or declare a genus"},
	ErrLoopControlOutsideLoop: {"S017", SemanticPhase, "%q used outside a loop",
		"'rumpe' and 'perge' only apply inside 'dum' and 'ex/de ... pro' loops"},
	ErrReturnOutsideFunction: {"S018", SemanticPhase, "'redde' used outside a function",
		"use 'redde' inside a functio body"},
	ErrEgoOutsideGenus: {"S019", SemanticPhase, "'ego' used outside a genus",
		"'ego' refers to the instance inside genus methods"},
}

// Adding a Code without a catalog entry fails to compile here.
const _ = uint(len(catalog)-int(codeCount)) + uint(int(codeCount)-len(catalog))

// ID returns the stable textual code, like "S003".
func (c Code) ID() string {
	if c < 0 || c >= codeCount {
		return "X000"
	}
	return catalog[c].id
}

func (c Code) String() string { return c.ID() }

func (c Code) Phase() Phase {
	if c < 0 || c >= codeCount {
		return SemanticPhase
	}
	return catalog[c].phase
}

// Help returns the canned help text of the code.
func (c Code) Help() string {
	if c < 0 || c >= codeCount {
		return ""
	}
	return catalog[c].help
}

// Codes lists the whole catalog in code order.
func Codes() []Code {
	codes := make([]Code, 0, codeCount)
	for c := Code(0); c < codeCount; c++ {
		codes = append(codes, c)
	}
	return codes
}

// CodeByID looks a code up by its stable textual id.
func CodeByID(id string) (Code, bool) {
	for c := Code(0); c < codeCount; c++ {
		if catalog[c].id == id {
			return c, true
		}
	}
	return 0, false
}

type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Help     string
	Span     Span
}

func newDiagnostic(code Code, span Span, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(catalog[code].format, args...),
		Help:     catalog[code].help,
		Span:     span,
	}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code.ID(), d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diagnostics []*Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// FilterPhase keeps the diagnostics of one phase.
func FilterPhase(diagnostics []*Diagnostic, phase Phase) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range diagnostics {
		if d.Code.Phase() == phase {
			out = append(out, d)
		}
	}
	return out
}

func describeToken(token *Token) string {
	if token == nil {
		return "end of input"
	}
	switch token.tp {
	case KeywordTP:
		return fmt.Sprintf("keyword '%s'", token.content)
	case IdentifierTP:
		return fmt.Sprintf("name '%s'", token.content)
	case StringTP:
		return "string literal"
	case IntegerTP, FloatTP:
		return fmt.Sprintf("number %s", token.content)
	case RegexTP:
		return "regex literal"
	}
	return fmt.Sprintf("'%s'", strings.TrimSpace(token.content))
}
