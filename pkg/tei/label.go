package tei

import "strings"

// DefaultLabelMessage is the label used when a name element holds no text.
const DefaultLabelMessage = "no label provided"

// EntityLabel builds a human-readable label from a name element such as
// tei:persName. Structured names are assembled as "surname, forename"; other
// names use their normalized text content.
//
// The language is taken from the name element's xml:lang, then from the first
// surname or forename child that carries one, then defaultLang.
func EntityLabel(name *Element, defaultLang string) (string, string) {
	if name == nil {
		return DefaultLabelMessage, defaultLang
	}

	lang, hasLang := name.Lang()

	surname, surnameLang := namePart(name, "surname")
	forename, forenameLang := namePart(name, "forename")

	if !hasLang {
		switch {
		case surnameLang != "":
			lang = surnameLang
		case forenameLang != "":
			lang = forenameLang
		default:
			lang = defaultLang
		}
	}

	var label string
	switch {
	case surname != "" && forename != "":
		label = surname + ", " + forename
	case surname != "":
		label = surname
	case forename != "":
		label = forename
	default:
		label = collapse(name.AllText())
	}

	if label == "" {
		label = DefaultLabelMessage
	}
	return label, lang
}

// namePart returns the normalized text and language of the first child
// element with the given local name.
func namePart(name *Element, local string) (string, string) {
	for _, child := range name.Children() {
		if child.Tag() != local {
			continue
		}
		lang, _ := child.Lang()
		return collapse(child.AllText()), lang
	}
	return "", ""
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
