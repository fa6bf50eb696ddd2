package spionic

// Wide diacritic symbols and their narrow equivalents.
var widthRules = []Rule{
	{")", "0"}, {"(", "9"}, {"&", "/"}, {"_", `\`}, {"~", "="}, {"!", "1"}, {"@", "2"}, {"}", "]"},
	{"#", "3"}, {"$", "4"}, {"{", "["},
}

// Adjacent breathing/accent pairs, in either order, and the combined marker
// that replaces them.
//
//	1 smooth+acute   2 smooth+grave   3 rough+acute   4 rough+grave
//	5 diaeresis+acute   6 diaeresis+grave
//	] smooth+circumflex   [ rough+circumflex
var combinedRules = []Rule{
	{"0/", "1"}, {"/0", "1"},
	{`0\`, "2"}, {`\0`, "2"},
	{"9/", "3"}, {"/9", "3"},
	{`9\`, "4"}, {`\9`, "4"},
	{"+/", "5"}, {"/+", "5"},
	{`+\`, "6"}, {`\+`, "6"},
	{"0=", "]"}, {"=0", "]"},
	{"9=", "["}, {"=9", "["},
}

// Narrow-form tokens and their Greek glyphs. Vowels with iota subscript
// accept the diacritic on either side of the "|" marker.
var glyphRules = []Rule{
	// iota subscript, diacritic after the marker
	{"a|0", "ᾀ"}, {"h|0", "ᾐ"}, {"w|0", "ᾠ"},
	{"a|9", "ᾁ"}, {"h|9", "ᾑ"}, {"w|9", "ᾡ"},
	{"a|/", "ᾴ"}, {"h|/", "ῄ"}, {"w|/", "ῴ"},
	{"a|1", "ᾄ"}, {"h|1", "ᾔ"}, {"w|1", "ᾤ"},
	{"a|3", "ᾅ"}, {"h|3", "ᾕ"}, {"w|3", "ᾥ"},
	{"a|\\", "ᾲ"}, {"h|\\", "ῂ"}, {"w|\\", "ῲ"},
	{"a|2", "ᾂ"}, {"h|2", "ᾒ"}, {"w|2", "ᾢ"},
	{"a|4", "ᾃ"}, {"h|4", "ᾓ"}, {"w|4", "ᾣ"},
	{"a|=", "ᾷ"}, {"h|=", "ῇ"}, {"w|=", "ῷ"},
	{"a|]", "ᾆ"}, {"h|]", "ᾖ"}, {"w|]", "ᾦ"},
	{"a|[", "ᾇ"}, {"h|[", "ᾗ"}, {"w|[", "ᾧ"},

	// iota subscript, diacritic before the marker
	{"a0|", "ᾀ"}, {"h0|", "ᾐ"}, {"w0|", "ᾠ"},
	{"a9|", "ᾁ"}, {"h9|", "ᾑ"}, {"w9|", "ᾡ"},
	{"a/|", "ᾴ"}, {"h/|", "ῄ"}, {"w/|", "ῴ"},
	{"a1|", "ᾄ"}, {"h1|", "ᾔ"}, {"w1|", "ᾤ"},
	{"a3|", "ᾅ"}, {"h3|", "ᾕ"}, {"w3|", "ᾥ"},
	{"a\\|", "ᾲ"}, {"h\\|", "ῂ"}, {"w\\|", "ῲ"},
	{"a2|", "ᾂ"}, {"h2|", "ᾒ"}, {"w2|", "ᾢ"},
	{"a4|", "ᾃ"}, {"h4|", "ᾓ"}, {"w4|", "ᾣ"},
	{"a=|", "ᾷ"}, {"h=|", "ῇ"}, {"w=|", "ῷ"},
	{"a]|", "ᾆ"}, {"h]|", "ᾖ"}, {"w]|", "ᾦ"},
	{"a[|", "ᾇ"}, {"h[|", "ᾗ"}, {"w[|", "ᾧ"},

	// iota subscript alone
	{"a|", "ᾳ"}, {"h|", "ῃ"}, {"w|", "ῳ"},

	// diaeresis, alone and combined with an accent
	{"i+", "ϊ"}, {"u+", "ϋ"},
	{"i5", "ΐ"},
	{"i6", "ῒ"},

	// lowercase vowels, diacritic after the letter
	{"a0", "ἀ"}, {"e0", "ἐ"}, {"h0", "ἠ"}, {"i0", "ἰ"}, {"o0", "ὀ"}, {"u0", "ὐ"}, {"w0", "ὠ"},
	{"a9", "ἁ"}, {"e9", "ἑ"}, {"h9", "ἡ"}, {"i9", "ἱ"}, {"o9", "ὁ"}, {"u9", "ὑ"}, {"w9", "ὡ"},
	{"a/", "ά"}, {"e/", "έ"}, {"h/", "ή"}, {"i/", "ί"}, {"o/", "ό"}, {"u/", "ύ"}, {"w/", "ώ"},
	{"a1", "ἄ"}, {"e1", "ἔ"}, {"h1", "ἤ"}, {"i1", "ἴ"}, {"o1", "ὄ"}, {"u1", "ὔ"}, {"w1", "ὤ"},
	{"a3", "ἅ"}, {"e3", "ἕ"}, {"h3", "ἥ"}, {"i3", "ἵ"}, {"o3", "ὅ"}, {"u3", "ὕ"}, {"w3", "ὥ"},
	{"a\\", "ὰ"}, {"e\\", "ὲ"}, {"h\\", "ὴ"}, {"i\\", "ὶ"}, {"o\\", "ὸ"}, {"u\\", "ὺ"}, {"w\\", "ὼ"},
	{"a2", "ἂ"}, {"e2", "ἒ"}, {"h2", "ἢ"}, {"i2", "ἲ"}, {"o2", "ὂ"}, {"u2", "ὒ"}, {"w2", "ὢ"},
	{"a4", "ἃ"}, {"e4", "ἓ"}, {"h4", "ἣ"}, {"i4", "ἳ"}, {"o4", "ὃ"}, {"u4", "ὓ"}, {"w4", "ὣ"},
	{"a=", "ᾶ"}, {"h=", "ῆ"}, {"i=", "ῖ"}, {"u=", "ῦ"}, {"w=", "ῶ"},
	{"a]", "ἆ"}, {"h]", "ἦ"}, {"i]", "ἶ"}, {"u]", "ὖ"}, {"w]", "ὦ"},
	{"a[", "ἇ"}, {"h[", "ἧ"}, {"i[", "ἷ"}, {"u[", "ὗ"}, {"w[", "ὧ"},

	// uppercase vowels, diacritic before the letter
	{"0A", "Ἀ"}, {"0E", "Ἐ"}, {"0H", "Ἠ"}, {"0I", "Ἰ"}, {"0O", "Ὀ"}, {"0W", "Ὠ"},
	{"9A", "Ἁ"}, {"9E", "Ἑ"}, {"9H", "Ἡ"}, {"9I", "Ἱ"}, {"9O", "Ὁ"}, {"9U", "Ὑ"}, {"9W", "Ὡ"},
	{"/A", "Ά"}, {"/E", "Έ"}, {"/H", "Ή"}, {"/I", "Ί"}, {"/O", "Ό"}, {"/U", "Ύ"}, {"/W", "Ώ"},
	{"1A", "Ἄ"}, {"1E", "Ἔ"}, {"1H", "Ἤ"}, {"1I", "Ἴ"}, {"1O", "Ὄ"}, {"1W", "Ὤ"},
	{"3A", "Ἅ"}, {"3E", "Ἕ"}, {"3H", "Ἥ"}, {"3I", "Ἵ"}, {"3O", "Ὅ"}, {"3U", "Ὕ"}, {"3W", "Ὥ"},
	{"\\A", "Ὰ"}, {"\\E", "Ὲ"}, {"\\H", "Ὴ"}, {"\\I", "Ὶ"}, {"\\O", "Ὸ"}, {"\\U", "Ὺ"}, {"\\W", "Ὼ"},
	{"2A", "Ἂ"}, {"2E", "Ἒ"}, {"2H", "Ἢ"}, {"2I", "Ἲ"}, {"2O", "Ὂ"}, {"2W", "Ὤ"}, // same glyph as 1W, probably meant Ὢ; kept for compatibility
	{"4A", "Ἃ"}, {"4E", "Ἓ"}, {"4H", "Ἣ"}, {"4I", "Ἳ"}, {"4O", "Ὃ"}, {"4U", "Ὓ"}, {"4W", "Ὣ"},
	{"]A", "Ἆ"}, {"]H", "Ἦ"}, {"]I", "Ἶ"}, {"]W", "Ὦ"},
	{"[A", "Ἇ"}, {"[H", "Ἧ"}, {"[I", "Ἷ"}, {"[U", "Ὗ"}, {"[W", "Ὧ"},

	{"r9", "ῥ"}, {"9R", "\u1ffe\u03a1"},

	// plain letters
	{"a", "α"}, {"b", "β"}, {"g", "γ"}, {"d", "δ"}, {"e", "ε"}, {"z", "ζ"}, {"h", "η"}, {"q", "θ"},
	{"i", "ι"}, {"k", "κ"}, {"l", "λ"}, {"m", "μ"}, {"n", "ν"}, {"c", "ξ"}, {"o", "ο"}, {"p", "π"},
	{"w", "ω"}, {"r", "ρ"}, {"s", "σ"}, {"j", "ς"}, {"t", "τ"}, {"u", "υ"}, {"f", "φ"}, {"x", "χ"},
	{"y", "ψ"},
	{"A", "Α"}, {"B", "Β"}, {"G", "Γ"}, {"D", "Δ"}, {"E", "Ε"}, {"Z", "Ζ"}, {"H", "Η"}, {"Q", "Θ"},
	{"I", "Ι"}, {"K", "Κ"}, {"L", "Λ"}, {"M", "Μ"}, {"N", "Ν"}, {"C", "Ξ"}, {"O", "Ο"}, {"P", "Π"},
	{"R", "Ρ"}, {"S", "Σ"}, {"T", "Τ"}, {"U", "Υ"}, {"F", "Φ"}, {"X", "Χ"}, {"Y", "Ψ"}, {"W", "Ω"},

	// stigma, digamma, koppa, sampi
	{"v", "ϛ"}, {"V", "Ϝ"}, {"J", "ϙ"}, {"`", "ϡ"},

	{":", "\u0387"}, {";", "\u037e"}, {"-", "\u2013"}, {"'", "\u2019"}, {"7", " "},
}
