package features

// entry is one row of articulatory facts; each phoneme has a symbol in
// both notations.
type entry struct {
	ipa, digraph string
	voice        Voicing
	place        string
	manner       string
}

const (
	Bilabial     = "bilabial"
	Labiodental  = "labiodental"
	Alveolar     = "alveolar"
	Postalveolar = "postalveolar"
	Retroflex    = "retroflex"
	Velar        = "velar"
	Uvular       = "uvular"

	Stop             = "stop"
	Fricative        = "fricative"
	Nasal            = "nasal"
	Sibilant         = "sibilant"
	Affricate        = "affricate"
	LateralFricative = "lateral fricative"
	LateralAffricate = "lateral affricate"
)

var catalogue = []entry{
	// Bilabial, labio-dental
	{"p", "p", Voiceless, Bilabial, Stop},
	{"b", "b", Voiced, Bilabial, Stop},
	{"ɸ", "ph", Voiceless, Bilabial, Fricative},
	{"β", "bh", Voiced, Bilabial, Fricative},
	{"f", "f", Voiceless, Labiodental, Fricative},
	{"v", "v", Voiced, Labiodental, Fricative},
	{"m", "m", Voiced, Bilabial, Nasal},
	{"m", "m", Voiced, Labiodental, Nasal},
	// Alveolar
	{"t", "t", Voiceless, Alveolar, Stop},
	{"d", "d", Voiced, Alveolar, Stop},
	{"s", "s", Voiceless, Alveolar, Sibilant},
	{"z", "z", Voiced, Alveolar, Sibilant},
	{"θ", "th", Voiceless, Alveolar, Fricative},
	{"ð", "dh", Voiced, Alveolar, Fricative},
	{"ɬ", "lh", Voiceless, Alveolar, LateralFricative},
	{"ɮ", "ldh", Voiced, Alveolar, LateralFricative},
	{"tɬ", "tl", Voiceless, Alveolar, LateralAffricate},
	{"dɮ", "dl", Voiced, Alveolar, LateralAffricate},
	{"ts", "ts", Voiceless, Alveolar, Affricate},
	{"dz", "dz", Voiced, Alveolar, Affricate},
	{"ʃ", "sh", Voiceless, Postalveolar, Sibilant},
	{"ʒ", "zh", Voiced, Postalveolar, Sibilant},
	{"tʃ", "ch", Voiceless, Postalveolar, Affricate},
	{"dʒ", "j", Voiced, Postalveolar, Affricate},
	{"n", "n", Voiced, Alveolar, Nasal},
	// Retroflex
	{"ʈ", "rt", Voiceless, Retroflex, Stop},
	{"ɖ", "rd", Voiced, Retroflex, Stop},
	{"ʂ", "sr", Voiceless, Retroflex, Sibilant},
	{"ʐ", "zr", Voiced, Retroflex, Sibilant},
	{"ʈʂ", "rts", Voiceless, Retroflex, Affricate},
	{"ɖʐ", "rdz", Voiced, Retroflex, Affricate},
	{"ɳ", "rn", Voiced, Retroflex, Nasal},
	// Velar
	{"k", "k", Voiceless, Velar, Stop},
	{"g", "g", Voiced, Velar, Stop},
	{"x", "kh", Voiceless, Velar, Fricative},
	{"ɣ", "gh", Voiced, Velar, Fricative},
	{"ŋ", "ng", Voiced, Velar, Nasal},
	// Uvular
	{"q", "q", Voiceless, Uvular, Stop},
	{"ɢ", "gq", Voiced, Uvular, Stop},
	{"χ", "qh", Voiceless, Uvular, Fricative},
	{"ʁ", "gqh", Voiced, Uvular, Fricative},
	{"ɴ", "nq", Voiced, Uvular, Nasal},
}
