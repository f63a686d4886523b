package token

import "strconv"

type Token int

// List of all tokens of the LOLCODE programming language.
// When adding a new token add it in between blocks since we use comparison functions to check properties of tokens.
const (
	// Not to be used in code. Is to catch uninitialized tokens.
	Undefined Token = iota // <undefined>

	// ==================== KEYWORDS ====================

	// Program structure keywords
	HAI     // HAI
	KTHXBYE // KTHXBYE
	CANHAS  // CAN HAS

	// Variable keywords
	IHASA  // I HAS A
	ITZ    // ITZ
	R      // R
	ISNOWA // IS NOW A
	HASA   // HAS A
	SRS    // SRS
	IT     // IT

	// Expression keywords
	SUMOF      // SUM OF
	DIFFOF     // DIFF OF
	PRODUKTOF  // PRODUKT OF
	QUOSHUNTOF // QUOSHUNT OF
	MODOF      // MOD OF
	BIGGROF    // BIGGR OF
	SMALLROF   // SMALLR OF
	BOTHOF     // BOTH OF
	EITHEROF   // EITHER OF
	WONOF      // WON OF
	BOTHSAEM   // BOTH SAEM
	DIFFRINT   // DIFFRINT
	NOT        // NOT
	ALLOF      // ALL OF
	ANYOF      // ANY OF
	SMOOSH     // SMOOSH
	MAEK       // MAEK
	AN         // AN
	MKAY       // MKAY

	// I/O keywords
	VISIBLE // VISIBLE
	GIMMEH  // GIMMEH

	// Control flow keywords
	ORLY      // O RLY
	YARLY     // YA RLY
	MEBBE     // MEBBE
	NOWAI     // NO WAI
	OIC       // OIC
	WTF       // WTF
	OMG       // OMG
	OMGWTF    // OMGWTF
	IMINYR    // IM IN YR
	IMOUTTAYR // IM OUTTA YR
	UPPIN     // UPPIN
	NERFIN    // NERFIN
	YR        // YR
	TIL       // TIL
	WILE      // WILE
	HOWIZI    // HOW IZ I
	IFUSAYSO  // IF U SAY SO
	FOUNDYR   // FOUND YR
	GTFO      // GTFO
	IIZ       // I IZ

	// ==================== TYPES ====================

	NOOB   // NOOB
	TROOF  // TROOF
	NUMBR  // NUMBR
	NUMBAR // NUMBAR
	YARN   // YARN
	BUKKIT // BUKKIT

	// ==================== LITERALS ====================

	// Troof constants
	WIN  // WIN
	FAIL // FAIL

	// User-defined literals
	Identifier // <identifier>
	NumbrLit   // <numbr>
	NumbarLit  // <numbar>
	YarnLit    // <yarn>

	// ==================== PUNCTUATION ====================

	Comma        // ,
	Ellipsis     // ...
	QuestionMark // ?
	Exclamation  // !
	SlotAccess   // 'Z

	// ==================== SPECIAL TOKENS ====================

	LineComment  // <linecomment>
	BlockComment // <blockcomment>
	NewLine      // <newline>
	EOF          // <EOF>
	Illegal      // <illegal>
	numToks
)

var tokNames = [numToks]string{
	Undefined:    "<undefined>",
	HAI:          "HAI",
	KTHXBYE:      "KTHXBYE",
	CANHAS:       "CAN HAS",
	IHASA:        "I HAS A",
	ITZ:          "ITZ",
	R:            "R",
	ISNOWA:       "IS NOW A",
	HASA:         "HAS A",
	SRS:          "SRS",
	IT:           "IT",
	SUMOF:        "SUM OF",
	DIFFOF:       "DIFF OF",
	PRODUKTOF:    "PRODUKT OF",
	QUOSHUNTOF:   "QUOSHUNT OF",
	MODOF:        "MOD OF",
	BIGGROF:      "BIGGR OF",
	SMALLROF:     "SMALLR OF",
	BOTHOF:       "BOTH OF",
	EITHEROF:     "EITHER OF",
	WONOF:        "WON OF",
	BOTHSAEM:     "BOTH SAEM",
	DIFFRINT:     "DIFFRINT",
	NOT:          "NOT",
	ALLOF:        "ALL OF",
	ANYOF:        "ANY OF",
	SMOOSH:       "SMOOSH",
	MAEK:         "MAEK",
	AN:           "AN",
	MKAY:         "MKAY",
	VISIBLE:      "VISIBLE",
	GIMMEH:       "GIMMEH",
	ORLY:         "O RLY",
	YARLY:        "YA RLY",
	MEBBE:        "MEBBE",
	NOWAI:        "NO WAI",
	OIC:          "OIC",
	WTF:          "WTF",
	OMG:          "OMG",
	OMGWTF:       "OMGWTF",
	IMINYR:       "IM IN YR",
	IMOUTTAYR:    "IM OUTTA YR",
	UPPIN:        "UPPIN",
	NERFIN:       "NERFIN",
	YR:           "YR",
	TIL:          "TIL",
	WILE:         "WILE",
	HOWIZI:       "HOW IZ I",
	IFUSAYSO:     "IF U SAY SO",
	FOUNDYR:      "FOUND YR",
	GTFO:         "GTFO",
	IIZ:          "I IZ",
	NOOB:         "NOOB",
	TROOF:        "TROOF",
	NUMBR:        "NUMBR",
	NUMBAR:       "NUMBAR",
	YARN:         "YARN",
	BUKKIT:       "BUKKIT",
	WIN:          "WIN",
	FAIL:         "FAIL",
	Identifier:   "<identifier>",
	NumbrLit:     "<numbr>",
	NumbarLit:    "<numbar>",
	YarnLit:      "<yarn>",
	Comma:        ",",
	Ellipsis:     "...",
	QuestionMark: "?",
	Exclamation:  "!",
	SlotAccess:   "'Z",
	LineComment:  "<linecomment>",
	BlockComment: "<blockcomment>",
	NewLine:      "<newline>",
	EOF:          "<EOF>",
	Illegal:      "<illegal>",
}

// String returns the LOLCODE spelling of keywords and punctuation,
// and a bracketed description for the remaining tokens.
func (tok Token) String() string {
	if tok < 0 || tok >= numToks {
		return "Token(" + strconv.Itoa(int(tok)) + ")"
	}
	return tokNames[tok]
}

// IsKeyword returns true if the token is a LOLCODE keyword.
func (tok Token) IsKeyword() bool {
	return tok >= HAI && tok <= IIZ
}

// IsType returns true if the token names one of the primitive LOLCODE types.
func (tok Token) IsType() bool {
	return tok >= NOOB && tok <= BUKKIT
}

// IsLiteral returns true if the token is a literal value (troof constant or user-defined literal).
// NOOB is not included since it doubles as a type name.
func (tok Token) IsLiteral() bool {
	return tok == WIN || tok == FAIL || (tok >= NumbrLit && tok <= YarnLit)
}

// IsPunctuation returns true if the token is a punctuation token.
func (tok Token) IsPunctuation() bool {
	return tok >= Comma && tok <= SlotAccess
}

// IsComment returns true for single and multi-line comments.
func (tok Token) IsComment() bool {
	return tok == LineComment || tok == BlockComment
}

// IsBinaryOperator returns true for the two-operand expression keywords.
func (tok Token) IsBinaryOperator() bool {
	return tok >= SUMOF && tok <= DIFFRINT
}

// IsNaryOperator returns true for the variadic expression keywords terminated by MKAY.
func (tok Token) IsNaryOperator() bool {
	return tok == ALLOF || tok == ANYOF || tok == SMOOSH
}

// IsStatementEnd returns true if the token terminates a statement.
// The comma acts as a soft newline in LOLCODE.
func (tok Token) IsStatementEnd() bool {
	return tok == NewLine || tok == Comma || tok == EOF
}

// IsBlockEnd returns true if the token closes or splits a block.
func (tok Token) IsBlockEnd() bool {
	switch tok {
	case IMOUTTAYR, IFUSAYSO, OIC, MEBBE, NOWAI, OMG, OMGWTF:
		return true
	}
	return false
}

// CanStartExpression returns true if an expression may begin with the token.
func (tok Token) CanStartExpression() bool {
	switch {
	case tok.IsLiteral(), tok.IsBinaryOperator(), tok.IsNaryOperator():
		return true
	}
	switch tok {
	case NOOB, NOT, MAEK, IIZ, Identifier, SRS, IT:
		return true
	}
	return false
}

// LookupKeyword returns [Identifier] or the token for the single-word keyword word represents.
// LOLCODE keywords are case-sensitive.
func LookupKeyword(word []byte) Token {
	switch string(word) {
	default:
		return Identifier
	case "HAI":
		return HAI
	case "KTHXBYE":
		return KTHXBYE
	case "ITZ":
		return ITZ
	case "R":
		return R
	case "SRS":
		return SRS
	case "IT":
		return IT
	case "DIFFRINT":
		return DIFFRINT
	case "NOT":
		return NOT
	case "SMOOSH":
		return SMOOSH
	case "MAEK":
		return MAEK
	case "AN":
		return AN
	case "MKAY":
		return MKAY
	case "VISIBLE":
		return VISIBLE
	case "GIMMEH":
		return GIMMEH
	case "MEBBE":
		return MEBBE
	case "OIC":
		return OIC
	case "WTF":
		return WTF
	case "OMG":
		return OMG
	case "OMGWTF":
		return OMGWTF
	case "UPPIN":
		return UPPIN
	case "NERFIN":
		return NERFIN
	case "YR":
		return YR
	case "TIL":
		return TIL
	case "WILE":
		return WILE
	case "GTFO":
		return GTFO
	case "NOOB":
		return NOOB
	case "TROOF":
		return TROOF
	case "NUMBR":
		return NUMBR
	case "NUMBAR":
		return NUMBAR
	case "YARN":
		return YARN
	case "BUKKIT":
		return BUKKIT
	case "WIN":
		return WIN
	case "FAIL":
		return FAIL
	}
}

// Phrase is a keyword spelled with more than one word.
type Phrase struct {
	Words []string
	Tok   Token
}

// phrases is keyed by the first word. Longer phrases sharing a first word come first.
var phrases = map[string][]Phrase{
	"CAN":      {{Words: []string{"CAN", "HAS"}, Tok: CANHAS}},
	"I":        {{Words: []string{"I", "HAS", "A"}, Tok: IHASA}, {Words: []string{"I", "IZ"}, Tok: IIZ}},
	"IS":       {{Words: []string{"IS", "NOW", "A"}, Tok: ISNOWA}},
	"HAS":      {{Words: []string{"HAS", "A"}, Tok: HASA}},
	"SUM":      {{Words: []string{"SUM", "OF"}, Tok: SUMOF}},
	"DIFF":     {{Words: []string{"DIFF", "OF"}, Tok: DIFFOF}},
	"PRODUKT":  {{Words: []string{"PRODUKT", "OF"}, Tok: PRODUKTOF}},
	"QUOSHUNT": {{Words: []string{"QUOSHUNT", "OF"}, Tok: QUOSHUNTOF}},
	"MOD":      {{Words: []string{"MOD", "OF"}, Tok: MODOF}},
	"BIGGR":    {{Words: []string{"BIGGR", "OF"}, Tok: BIGGROF}},
	"SMALLR":   {{Words: []string{"SMALLR", "OF"}, Tok: SMALLROF}},
	"BOTH":     {{Words: []string{"BOTH", "OF"}, Tok: BOTHOF}, {Words: []string{"BOTH", "SAEM"}, Tok: BOTHSAEM}},
	"EITHER":   {{Words: []string{"EITHER", "OF"}, Tok: EITHEROF}},
	"WON":      {{Words: []string{"WON", "OF"}, Tok: WONOF}},
	"ALL":      {{Words: []string{"ALL", "OF"}, Tok: ALLOF}},
	"ANY":      {{Words: []string{"ANY", "OF"}, Tok: ANYOF}},
	"O":        {{Words: []string{"O", "RLY"}, Tok: ORLY}},
	"YA":       {{Words: []string{"YA", "RLY"}, Tok: YARLY}},
	"NO":       {{Words: []string{"NO", "WAI"}, Tok: NOWAI}},
	"IM":       {{Words: []string{"IM", "IN", "YR"}, Tok: IMINYR}, {Words: []string{"IM", "OUTTA", "YR"}, Tok: IMOUTTAYR}},
	"HOW":      {{Words: []string{"HOW", "IZ", "I"}, Tok: HOWIZI}},
	"IF":       {{Words: []string{"IF", "U", "SAY", "SO"}, Tok: IFUSAYSO}},
	"FOUND":    {{Words: []string{"FOUND", "YR"}, Tok: FOUNDYR}},
}

// LookupPhrase returns the multi-word keywords that begin with first.
func LookupPhrase(first []byte) []Phrase {
	return phrases[string(first)]
}
