package errors

// Error codes reported by the reader.
//
// Error code ranges:
// E0100-E0129: Lexical errors (token shape, escapes, characters)
// E0130-E0159: Structural errors (delimiters, map parity, document shape)
// E0160-E0179: Numeric errors (literal shape and precision suffixes)
// E0900-E0999: Reserved for tooling errors

const (
	// E0100: Character that cannot start any token
	ErrorUnexpectedCharacter = "E0100"

	// E0101: String literal without a closing quote
	ErrorUnterminatedString = "E0101"

	// E0102: Unknown or malformed escape inside a string
	ErrorInvalidEscape = "E0102"

	// E0103: Malformed character literal
	ErrorInvalidCharacter = "E0103"

	// E0104: Symbol or keyword that breaks identifier rules
	ErrorInvalidIdentifier = "E0104"

	// E0105: '#' dispatch forms other than sets and symbolic values
	ErrorUnsupportedDispatch = "E0105"

	// E0106: Input that is not valid UTF-8
	ErrorInvalidEncoding = "E0106"

	// E0130: Collection not closed before end of input
	ErrorUnterminatedCollection = "E0130"

	// E0131: Closing delimiter that does not match the open collection
	ErrorUnbalancedDelimiter = "E0131"

	// E0132: Map literal with an odd number of forms
	ErrorOddMapForms = "E0132"

	// E0133: Tokens after the single top-level value
	ErrorTrailingInput = "E0133"

	// E0134: Input with no value at all
	ErrorEmptyInput = "E0134"

	// E0135: Collections nested past the reader's depth limit
	ErrorNestingTooDeep = "E0135"

	// E0160: Token that starts like a number but is not one
	ErrorInvalidNumber = "E0160"

	// E0161: N or M suffix on a literal shape that does not allow it
	ErrorInvalidNumericSuffix = "E0161"

	// E0162: Double literal outside the representable range
	ErrorNumberOutOfRange = "E0162"
)

// Category groups error codes into the three failure families of the reader.
type Category string

const (
	Lexical    Category = "lexical"
	Structural Category = "structural"
	Numeric    Category = "numeric"
)

// CategoryOf returns the family an error code belongs to.
func CategoryOf(code string) Category {
	switch {
	case code >= "E0160" && code <= "E0179":
		return Numeric
	case code >= "E0130" && code <= "E0159":
		return Structural
	default:
		return Lexical
	}
}

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "Character cannot start a value"
	case ErrorUnterminatedString:
		return "String literal is missing its closing quote"
	case ErrorInvalidEscape:
		return "String contains an escape sequence the notation does not define"
	case ErrorInvalidCharacter:
		return "Character literal is not a single scalar, a known name or \\uXXXX"
	case ErrorInvalidIdentifier:
		return "Symbol or keyword does not follow identifier rules"
	case ErrorUnsupportedDispatch:
		return "Tagged literals and other '#' forms are not supported"
	case ErrorInvalidEncoding:
		return "Input is not valid UTF-8"
	case ErrorUnterminatedCollection:
		return "Collection is not closed before the end of input"
	case ErrorUnbalancedDelimiter:
		return "Closing delimiter does not match the open collection"
	case ErrorOddMapForms:
		return "Map literal must contain an even number of forms"
	case ErrorTrailingInput:
		return "Input continues after a complete value"
	case ErrorEmptyInput:
		return "Input contains no value"
	case ErrorNestingTooDeep:
		return "Collections are nested too deeply"
	case ErrorInvalidNumber:
		return "Numeric literal is malformed"
	case ErrorInvalidNumericSuffix:
		return "Precision suffix does not fit the literal shape"
	case ErrorNumberOutOfRange:
		return "Number is outside the range of its representation"
	default:
		return "Unknown error"
	}
}
