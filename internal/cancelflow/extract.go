package cancelflow

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
)

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Keys are folded with domain.NormalizeName.
var (
	deleteVerbs = set(
		"elimina", "eliminar", "borra", "borrar", "cancela", "cancelar",
		"anula", "anular", "quita", "quitar", "suprime", "suprimir",
		"remueve", "remover", "borre", "elimine", "cancele", "anule", "quite",
		"delete", "remove", "cancel",
	)

	articles = set("las", "la", "los", "el", "un", "una", "the", "all")

	recordNouns = set(
		"entrega", "entregas", "registro", "registros", "servicio", "servicios",
		"cita", "citas", "services", "service", "appointments", "appointment",
		"deliveries", "delivery", "records", "record",
	)

	// skipped before a name starts
	titles = set(
		"paciente", "pacientes", "patient", "senor", "senora", "senorita",
		"sr", "sra", "srta", "don", "dona", "mr", "mrs", "ms",
	)

	// words that end a name
	stopWords = set(
		"por", "para", "hoy", "manana", "pasado", "a", "en", "con", "del", "de",
		"completo", "favor", "y", "today", "tomorrow", "please", "of", "for",
		"todas", "todos", "ahora",
	)

	nameIntroducers = set("de", "del", "para", "of", "for")

	quoted = regexp.MustCompile(`["'“”«»]([^"'“”«»]{3,})["'“”«»]`)
)

// IsCancelIntent reports whether text contains a delete or cancel verb.
func IsCancelIntent(text string) bool {
	for _, tok := range tokenize(text) {
		if deleteVerbs[tok.folded] {
			return true
		}
	}
	return false
}

type token struct {
	text   string
	folded string
	// punctuation followed the word ("López," or "López.")
	closed bool
}

func tokenize(text string) []token {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		word := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			if len(out) > 0 {
				out[len(out)-1].closed = true
			}
			continue
		}
		out = append(out, token{
			text:   word,
			folded: domain.NormalizeName(word),
			closed: !strings.HasSuffix(f, word),
		})
	}
	return out
}

func isNameWord(t token) bool {
	if utf8.RuneCountInString(t.text) < 2 {
		return false
	}
	for _, r := range t.text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return !stopWords[t.folded] && !deleteVerbs[t.folded] && !recordNouns[t.folded] &&
		!articles[t.folded] && !titles[t.folded]
}

// nameAt collects up to four name words starting at i, after any articles
// and titles ("la paciente", "el Sr.").
func nameAt(toks []token, i int) string {
	for i < len(toks) && (titles[toks[i].folded] || articles[toks[i].folded]) {
		i++
	}

	var words []string
	for ; i < len(toks) && len(words) < 4; i++ {
		if !isNameWord(toks[i]) {
			break
		}
		words = append(words, toks[i].text)
		if toks[i].closed {
			break
		}
	}
	return strings.Join(words, " ")
}

// ExtractPatientName guesses the patient a deletion request refers to. It
// tries, in order: a quoted string, a name after "de/del/para", a name after
// the delete verb and finally the trailing words. It returns "" rather than a
// doubtful guess, so the caller can ask.
func ExtractPatientName(text string) string {
	if m := quoted.FindStringSubmatch(text); m != nil {
		if c := strings.TrimSpace(m[1]); utf8.RuneCountInString(c) >= 3 {
			return c
		}
	}

	toks := tokenize(text)

	for i, t := range toks {
		if nameIntroducers[t.folded] && !t.closed {
			if name := nameAt(toks, i+1); name != "" {
				return name
			}
		}
	}

	for i, t := range toks {
		if !deleteVerbs[t.folded] || t.closed {
			continue
		}
		j := i + 1
		if j < len(toks) && (toks[j].folded == "a" || toks[j].folded == "al") {
			j++
		}
		if j < len(toks) && articles[toks[j].folded] {
			j++
		}
		if j < len(toks) && recordNouns[toks[j].folded] {
			j++
		}
		if name := nameAt(toks, j); name != "" {
			return name
		}
	}

	var tail []string
	for i := len(toks) - 1; i >= 0 && len(tail) < 4; i-- {
		if !isNameWord(toks[i]) {
			break
		}
		tail = append([]string{toks[i].text}, tail...)
	}
	return strings.Join(tail, " ")
}
