package tape

import (
	"slices"
	"testing"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{"Type command", `Type "hello"`, []TokenType{TOKEN_TYPE, TOKEN_STRING, TOKEN_EOF}},
		{"Sleep command", `Sleep 500ms`, []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF}},
		{"Enter with count", `Enter 3`, []TokenType{TOKEN_ENTER, TOKEN_NUMBER, TOKEN_EOF}},
		{"Key combination", `Ctrl+C`, []TokenType{TOKEN_CTRL, TOKEN_PLUS, TOKEN_IDENTIFIER, TOKEN_EOF}},
		{"Click", `Click 120 40`, []TokenType{TOKEN_CLICK, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF}},
		{"Drag", `Drag 1 2 3 4`, []TokenType{TOKEN_DRAG, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF}},
		{"Open path", `Open "/bin/paint"`, []TokenType{TOKEN_OPEN, TOKEN_STRING, TOKEN_EOF}},
		{"Illegal", `Click $`, []TokenType{TOKEN_CLICK, TOKEN_ILLEGAL, TOKEN_EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenTypes(Tokenize(tt.input)); !slices.Equal(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{"Double quoted string", `Type "hello world"`, "hello world"},
		{"Single quoted string", `Type 'hello world'`, "hello world"},
		{"Backtick string", "Type `hello world`", "hello world"},
		{"Escaped quotes", `Type "hello \"world\""`, `hello "world"`},
		{"Escaped newline", `Type "ls\n"`, "ls\n"},
		{"Unterminated", `Type "abc`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tokens[1].Type != TOKEN_STRING || tokens[1].Literal != tt.expectedValue {
				t.Errorf("Expected string %q, got %v %q", tt.expectedValue, tokens[1].Type, tokens[1].Literal)
			}
		})
	}
}

func TestLexerDurations(t *testing.T) {
	tests := []struct {
		input         string
		expectedValue string
	}{
		{`Sleep 500ms`, "500ms"},
		{`Sleep 2s`, "2s"},
		{`Sleep 1.5s`, "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedValue, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tokens[1].Type != TOKEN_DURATION || tokens[1].Literal != tt.expectedValue {
				t.Errorf("Expected duration %q, got %v %q", tt.expectedValue, tokens[1].Type, tokens[1].Literal)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `# This is a comment
Type "hello"
# Another comment
Enter`

	expected := []TokenType{
		TOKEN_NEWLINE,
		TOKEN_TYPE, TOKEN_STRING, TOKEN_NEWLINE,
		TOKEN_NEWLINE,
		TOKEN_ENTER, TOKEN_EOF,
	}
	if got := tokenTypes(Tokenize(input)); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := `Type "line1"
  Click 1 2

Enter`

	var got [][2]int
	for _, tok := range Tokenize(input) {
		switch tok.Type {
		case TOKEN_TYPE, TOKEN_CLICK, TOKEN_ENTER:
			got = append(got, [2]int{tok.Line, tok.Column})
		}
	}
	expected := [][2]int{{1, 1}, {2, 3}, {4, 1}}
	if !slices.Equal(got, expected) {
		t.Errorf("Expected positions %v, got %v", expected, got)
	}
}

func TestLexerAtModifier(t *testing.T) {
	tokens := Tokenize(`Type@100ms "hello"`)
	expected := []TokenType{TOKEN_TYPE, TOKEN_AT, TOKEN_DURATION, TOKEN_STRING, TOKEN_EOF}
	if got := tokenTypes(tokens); !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestKeywordTokenMap(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"Type", TOKEN_TYPE},
		{"Sleep", TOKEN_SLEEP},
		{"RightClick", TOKEN_RIGHT_CLICK},
		{"Screenshot", TOKEN_SCREENSHOT},
		{"FPS", TOKEN_IDENTIFIER},
		{"type", TOKEN_IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			if got := LookupKeyword(tt.keyword); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTokenTypeIsKey(t *testing.T) {
	for _, tt := range []TokenType{TOKEN_ENTER, TOKEN_UP, TOKEN_PAGE_DOWN, TOKEN_SPACE} {
		if !tt.IsKey() {
			t.Errorf("%v should be a key", tt)
		}
	}
	for _, tt := range []TokenType{TOKEN_TYPE, TOKEN_CTRL, TOKEN_CLICK, TOKEN_STRING} {
		if tt.IsKey() {
			t.Errorf("%v should not be a key", tt)
		}
	}
}
