// Package i18n holds the user-facing strings of the setup pipeline in the supported
// languages.
package i18n

import (
	"slices"

	"golang.org/x/text/language"
)

// Lang is a supported interface language.
type Lang string

const (
	English Lang = "en"
	Italian Lang = "it"
	Spanish Lang = "es"
	German  Lang = "de"
	French  Lang = "fr"

	Default = English
)

var supported = []Lang{English, Italian, Spanish, German, French}

// Supported returns the supported languages in display order.
func Supported() []Lang {
	return slices.Clone(supported)
}

// Normalize maps a language value to a supported Lang. Region and script subtags are
// ignored ("it-IT" is Italian). Anything unsupported or unparseable falls back to English.
func Normalize(value string) Lang {
	if value == "" {
		return Default
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default
	}
	base, _ := tag.Base()
	lang := Lang(base.String())
	if slices.Contains(supported, lang) {
		return lang
	}
	return Default
}

// Messages is the string table for one language.
type Messages struct {
	DataLoadErrorPrefix  string `json:"dataLoadErrorPrefix"`
	ValueLoadErrorPrefix string `json:"valueLoadErrorPrefix"`
	NoValues             string `json:"noValues"`
	NoResults            string `json:"noResults"`
	SelectValidFile      string `json:"selectValidFile"`

	Tyres          string `json:"tyres"`
	Electronics    string `json:"electronics"`
	Brakes         string `json:"brakes"`
	MechanicalGrip string `json:"mechanicalGrip"`
	Dampers        string `json:"dampers"`
	Aero           string `json:"aero"`
	Front          string `json:"front"`
	Rear           string `json:"rear"`
	LeftFront      string `json:"leftFront"`
	RightFront     string `json:"rightFront"`
	LeftRear       string `json:"leftRear"`
	RightRear      string `json:"rightRear"`
}

// For returns the messages for lang, falling back to English.
func For(lang Lang) Messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[Default]
}

// DataLoadError labels a discovery failure for display.
func (m Messages) DataLoadError(detail string) string {
	return m.DataLoadErrorPrefix + ": " + detail
}

// ValueLoadError labels a raw fetch or conversion failure for display.
func (m Messages) ValueLoadError(detail string) string {
	return m.ValueLoadErrorPrefix + ": " + detail
}

var catalog = map[Lang]Messages{
	English: {
		DataLoadErrorPrefix:  "Unable to read setups from repository",
		ValueLoadErrorPrefix: "Unable to fetch converted values from GoSetups",
		NoValues:             "No values available.",
		NoResults:            "No setups found for this combination.",
		SelectValidFile:      "Select a valid file from the list.",
		Tyres:                "Tyres",
		Electronics:          "Electronics",
		Brakes:               "Brakes",
		MechanicalGrip:       "Mechanical Grip",
		Dampers:              "Dampers",
		Aero:                 "Aero",
		Front:                "Front",
		Rear:                 "Rear",
		LeftFront:            "Left Front",
		RightFront:           "Right Front",
		LeftRear:             "Left Rear",
		RightRear:            "Right Rear",
	},
	Italian: {
		DataLoadErrorPrefix:  "Impossibile leggere i setup dalla repository",
		ValueLoadErrorPrefix: "Impossibile ottenere i valori convertiti da GoSetups",
		NoValues:             "Nessun valore disponibile.",
		NoResults:            "Nessun setup trovato per questa combinazione.",
		SelectValidFile:      "Seleziona un file valido dalla lista.",
		Tyres:                "Pneumatici",
		Electronics:          "Elettronica",
		Brakes:               "Freni",
		MechanicalGrip:       "Grip Meccanico",
		Dampers:              "Ammortizzatori",
		Aero:                 "Aerodinamica",
		Front:                "Frontale",
		Rear:                 "Posteriore",
		LeftFront:            "Anteriore Sinistra",
		RightFront:           "Anteriore Destra",
		LeftRear:             "Posteriore Sinistra",
		RightRear:            "Posteriore Destra",
	},
	Spanish: {
		DataLoadErrorPrefix:  "No se pudieron leer los setups del repositorio",
		ValueLoadErrorPrefix: "No se pudieron obtener los valores convertidos de GoSetups",
		NoValues:             "No hay valores disponibles.",
		NoResults:            "No se encontraron setups para esta combinación.",
		SelectValidFile:      "Selecciona un archivo válido de la lista.",
		Tyres:                "Neumáticos",
		Electronics:          "Electrónica",
		Brakes:               "Frenos",
		MechanicalGrip:       "Agarre Mecánico",
		Dampers:              "Amortiguadores",
		Aero:                 "Aerodinámica",
		Front:                "Delantero",
		Rear:                 "Trasero",
		LeftFront:            "Delantero Izquierdo",
		RightFront:           "Delantero Derecho",
		LeftRear:             "Trasero Izquierdo",
		RightRear:            "Trasero Derecho",
	},
	German: {
		DataLoadErrorPrefix:  "Setups konnten nicht aus dem Repository gelesen werden",
		ValueLoadErrorPrefix: "Konvertierte Werte konnten nicht von GoSetups geladen werden",
		NoValues:             "Keine Werte verfügbar.",
		NoResults:            "Keine Setups für diese Kombination gefunden.",
		SelectValidFile:      "Wähle eine gültige Datei aus der Liste.",
		Tyres:                "Reifen",
		Electronics:          "Elektronik",
		Brakes:               "Bremsen",
		MechanicalGrip:       "Mechanischer Grip",
		Dampers:              "Dämpfer",
		Aero:                 "Aerodynamik",
		Front:                "Vorne",
		Rear:                 "Hinten",
		LeftFront:            "Vorne Links",
		RightFront:           "Vorne Rechts",
		LeftRear:             "Hinten Links",
		RightRear:            "Hinten Rechts",
	},
	French: {
		DataLoadErrorPrefix:  "Impossible de lire les setups depuis le dépôt",
		ValueLoadErrorPrefix: "Impossible de récupérer les valeurs converties depuis GoSetups",
		NoValues:             "Aucune valeur disponible.",
		NoResults:            "Aucun setup trouvé pour cette combinaison.",
		SelectValidFile:      "Sélectionnez un fichier valide dans la liste.",
		Tyres:                "Pneus",
		Electronics:          "Électronique",
		Brakes:               "Freins",
		MechanicalGrip:       "Adhérence Mécanique",
		Dampers:              "Amortisseurs",
		Aero:                 "Aéro",
		Front:                "Avant",
		Rear:                 "Arrière",
		LeftFront:            "Avant Gauche",
		RightFront:           "Avant Droit",
		LeftRear:             "Arrière Gauche",
		RightRear:            "Arrière Droit",
	},
}
