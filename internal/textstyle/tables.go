package textstyle

// CharMap is an immutable rune substitution table. Runes without an entry
// pass through unchanged.
type CharMap struct {
	m map[rune]rune
}

// Lookup returns the substitute for r.
func (c CharMap) Lookup(r rune) (rune, bool) {
	v, ok := c.m[r]
	return v, ok
}

// Len returns the number of mapped runes.
func (c CharMap) Len() int { return len(c.m) }

// alphabet describes a contiguous Unicode block such as Mathematical Bold.
// Holes lists letters that live outside the block (mostly Letterlike Symbols).
type alphabet struct {
	upper, lower, digits rune
	holes                map[rune]rune
}

func (a alphabet) build() CharMap {
	m := make(map[rune]rune, 62)
	for i := rune(0); i < 26; i++ {
		if a.upper != 0 {
			m['A'+i] = a.upper + i
		}
		if a.lower != 0 {
			m['a'+i] = a.lower + i
		}
	}
	if a.digits != 0 {
		for i := rune(0); i < 10; i++ {
			m['0'+i] = a.digits + i
		}
	}
	for k, v := range a.holes {
		m[k] = v
	}
	return CharMap{m: m}
}

func fromPairs(pairs string) CharMap {
	runes := []rune(pairs)
	m := make(map[rune]rune, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		m[runes[i]] = runes[i+1]
	}
	return CharMap{m: m}
}

// Mathematical Alphanumeric Symbols, U+1D400 to U+1D7FF.
var (
	Bold = alphabet{upper: 0x1D400, lower: 0x1D41A, digits: 0x1D7CE}.build()

	Italic = alphabet{upper: 0x1D434, lower: 0x1D44E, holes: map[rune]rune{
		'h': 0x210E,
	}}.build()

	BoldItalic = alphabet{upper: 0x1D468, lower: 0x1D482}.build()

	Script = alphabet{upper: 0x1D49C, lower: 0x1D4B6, holes: map[rune]rune{
		'B': 0x212C, 'E': 0x2130, 'F': 0x2131, 'H': 0x210B, 'I': 0x2110,
		'L': 0x2112, 'M': 0x2133, 'R': 0x211B,
		'e': 0x212F, 'g': 0x210A, 'o': 0x2134,
	}}.build()

	BoldScript = alphabet{upper: 0x1D4D0, lower: 0x1D4EA}.build()

	Fraktur = alphabet{upper: 0x1D504, lower: 0x1D51E, holes: map[rune]rune{
		'C': 0x212D, 'H': 0x210C, 'I': 0x2111, 'R': 0x211C, 'Z': 0x2128,
	}}.build()

	DoubleStruck = alphabet{upper: 0x1D538, lower: 0x1D552, digits: 0x1D7D8, holes: map[rune]rune{
		'C': 0x2102, 'H': 0x210D, 'N': 0x2115, 'P': 0x2119, 'Q': 0x211A,
		'R': 0x211D, 'Z': 0x2124,
	}}.build()

	SansBold = alphabet{upper: 0x1D5D4, lower: 0x1D5EE, digits: 0x1D7EC}.build()

	Monospace = alphabet{upper: 0x1D670, lower: 0x1D68A, digits: 0x1D7F6}.build()
)

// SmallCaps maps lower-case letters to IPA / phonetic small capitals.
var SmallCaps = fromPairs("aᴀbʙcᴄdᴅeᴇfꜰgɢhʜiɪjᴊkᴋlʟmᴍnɴoᴏpᴘqǫrʀsꜱtᴛuᴜvᴠwᴡyʏzᴢ")

// UpsideDown maps characters to glyphs that read correctly when the
// string is also reversed.
var UpsideDown = fromPairs(
	"aɐbqcɔdpeǝfɟgƃhɥiᴉjɾkʞmɯnupdqbrɹtʇunvʌwʍyʎ" +
		"A∀BꓭCƆDꓷEƎFℲG⅁JſKꓘL˥MWPԀQΌRᴚT⊥U∩VΛWMY⅄" +
		"1Ɩ2ᄅ3Ɛ4ㄣ5ϛ697ㄥ96" +
		".˙,'',\"„!¡?¿()[]{}<>_‾&⅋;؛)(][}{><",
)

// Mirror maps characters to their horizontal mirror images.
var Mirror = fromPairs(
	"bddbpqqp()[]{}<>/\\\\/" +
		")(][}{><" +
		"EƎJႱL⅃NИRЯSƧZƸaɒcɔeɘfᎸgǫhʜjꞁkʞrɿsƨtƚyʏzƹ?⸮",
)

// Combining marks appended after every character.
const (
	MarkStrikethrough   = '\u0336'
	MarkUnderline       = '\u0332'
	MarkDoubleUnderline = '\u0333'
)

// smallWords stay lower case in title case unless they start the text.
var smallWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true, "or": true,
	"nor": true, "for": true, "so": true, "yet": true, "as": true, "at": true,
	"by": true, "in": true, "of": true, "off": true, "on": true, "per": true,
	"to": true, "up": true, "via": true, "from": true, "with": true, "into": true,
}
