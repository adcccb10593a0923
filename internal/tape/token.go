package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_PLUS TokenType = "PLUS"
	TOKEN_AT   TokenType = "AT"

	// Commands - Keyboard
	TOKEN_TYPE      TokenType = "Type"
	TOKEN_ENTER     TokenType = "Enter"
	TOKEN_SPACE     TokenType = "Space"
	TOKEN_BACKSPACE TokenType = "Backspace"
	TOKEN_DELETE    TokenType = "Delete"
	TOKEN_TAB       TokenType = "Tab"
	TOKEN_ESCAPE    TokenType = "Escape"

	// Commands - Navigation
	TOKEN_UP        TokenType = "Up"
	TOKEN_DOWN      TokenType = "Down"
	TOKEN_LEFT      TokenType = "Left"
	TOKEN_RIGHT     TokenType = "Right"
	TOKEN_HOME      TokenType = "Home"
	TOKEN_END       TokenType = "End"
	TOKEN_PAGE_UP   TokenType = "PageUp"
	TOKEN_PAGE_DOWN TokenType = "PageDown"

	// Commands - Modifiers
	TOKEN_CTRL TokenType = "Ctrl"

	// Commands - Pointer
	TOKEN_MOVE        TokenType = "Move"
	TOKEN_CLICK       TokenType = "Click"
	TOKEN_RIGHT_CLICK TokenType = "RightClick"
	TOKEN_DRAG        TokenType = "Drag"

	// Commands - Timing
	TOKEN_SLEEP TokenType = "Sleep"
	TOKEN_TICK  TokenType = "Tick"

	// Commands - Desktop
	TOKEN_OPEN       TokenType = "Open"
	TOKEN_SCREENSHOT TokenType = "Screenshot"

	// Commands - Settings
	TOKEN_SET    TokenType = "Set"
	TOKEN_OUTPUT TokenType = "Output"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsKey returns true if the token presses a single named key
func (tt TokenType) IsKey() bool {
	_, ok := keyCodes[CommandType(tt)]
	return ok
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	"Type":      TOKEN_TYPE,
	"Enter":     TOKEN_ENTER,
	"Space":     TOKEN_SPACE,
	"Backspace": TOKEN_BACKSPACE,
	"Delete":    TOKEN_DELETE,
	"Tab":       TOKEN_TAB,
	"Escape":    TOKEN_ESCAPE,

	"Up":       TOKEN_UP,
	"Down":     TOKEN_DOWN,
	"Left":     TOKEN_LEFT,
	"Right":    TOKEN_RIGHT,
	"Home":     TOKEN_HOME,
	"End":      TOKEN_END,
	"PageUp":   TOKEN_PAGE_UP,
	"PageDown": TOKEN_PAGE_DOWN,

	"Ctrl": TOKEN_CTRL,

	"Move":       TOKEN_MOVE,
	"Click":      TOKEN_CLICK,
	"RightClick": TOKEN_RIGHT_CLICK,
	"Drag":       TOKEN_DRAG,

	"Sleep": TOKEN_SLEEP,
	"Tick":  TOKEN_TICK,

	"Open":       TOKEN_OPEN,
	"Screenshot": TOKEN_SCREENSHOT,

	"Set":    TOKEN_SET,
	"Output": TOKEN_OUTPUT,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
