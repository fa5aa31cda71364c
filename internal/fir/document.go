package fir

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Data carries everything the document renderer needs for one FIR.
type Data struct {
	ID          string
	GeneratedAt time.Time

	Name           string
	Contact        string
	WitnessName    string
	WitnessContact string

	Date        string
	Time        string
	Location    string
	OffenceType string
	Confidence  float64

	SeverityLevel string
	SeverityScore int

	Persons        []string
	PhoneNumbers   []string
	VehicleNumbers []string
	Sections       []Section

	Description string
}

// NewReferenceID mints an FIR reference like FIR-20250114-3F2A9C1B.
func NewReferenceID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FIR-%s-%s", now.Format("20060102"), suffix)
}

// FormatPhone renders a normalized 10-digit number as +91 XXXXX XXXXX.
func FormatPhone(phone string) string {
	if len(phone) == 10 {
		return fmt.Sprintf("+91 %s %s", phone[:5], phone[5:])
	}
	return phone
}

// labels holds the per-language strings of the fixed document layout.
type labels struct {
	title          string
	reference      string
	generatedOn    string
	severity       string
	sectionA       string
	sectionB       string
	sectionC       string
	sectionD       string
	sectionE       string
	sectionF       string
	sectionG       string
	sectionH       string
	name           string
	contact        string
	dateOfIncident string
	timeOfIncident string
	place          string
	offenceType    string
	confidence     string
	phoneNumbers   string
	vehicleNumbers string
	notIdentified  string
	noneExtracted  string
	none           string
	noneProvided   string
	notSpecified   string
	toBeDetermined string
	request        string
	affirmation    string
	signature      string
	date           string
	officialUse    string
	endOfReport    string
}

var englishLabels = labels{
	title:          "FIRST INFORMATION REPORT (FIR)",
	reference:      "FIR Reference",
	generatedOn:    "Generated On",
	severity:       "Severity",
	sectionA:       "SECTION A: COMPLAINANT DETAILS",
	sectionB:       "SECTION B: WITNESS DETAILS",
	sectionC:       "SECTION C: INCIDENT DETAILS",
	sectionD:       "SECTION D: PERSONS INVOLVED / ACCUSED",
	sectionE:       "SECTION E: EXTRACTED INFORMATION",
	sectionF:       "SECTION F: APPLICABLE LEGAL SECTIONS",
	sectionG:       "SECTION G: DETAILED NARRATIVE",
	sectionH:       "SECTION H: COMPLAINANT'S REQUEST",
	name:           "Name",
	contact:        "Contact",
	dateOfIncident: "Date of Incident",
	timeOfIncident: "Time of Incident",
	place:          "Place of Incident",
	offenceType:    "Type of Offence",
	confidence:     "Classification Confidence",
	phoneNumbers:   "Phone Numbers",
	vehicleNumbers: "Vehicle Numbers",
	notIdentified:  "Not identified",
	noneExtracted:  "None extracted",
	none:           "None",
	noneProvided:   "None provided",
	notSpecified:   "Not specified",
	toBeDetermined: "To be determined by investigating officer",
	request: "I, %s, hereby request the concerned authorities to kindly register\n" +
		"this First Information Report and take necessary legal action against\n" +
		"the accused person(s) under the applicable sections of the Indian Penal\n" +
		"Code and other relevant laws.",
	affirmation: "I affirm that the information provided above is true and correct to\n" +
		"the best of my knowledge and belief.",
	signature:   "Signature of Complainant",
	date:        "Date",
	officialUse: "FOR OFFICIAL USE ONLY",
	endOfReport: "END OF FIRST INFORMATION REPORT",
}

var teluguLabels = labels{
	title:          "ప్రథమ సమాచార నివేదిక (FIR)",
	reference:      "FIR సూచిక",
	generatedOn:    "తయారు చేసిన తేదీ",
	severity:       "తీవ్రత",
	sectionA:       "విభాగం A: ఫిర్యాదుదారు వివరాలు",
	sectionB:       "విభాగం B: సాక్షి వివరాలు",
	sectionC:       "విభాగం C: సంఘటన వివరాలు",
	sectionD:       "విభాగం D: సంబంధిత వ్యక్తులు / నిందితులు",
	sectionE:       "విభాగం E: సేకరించిన సమాచారం",
	sectionF:       "విభాగం F: వర్తించే చట్ట సెక్షన్లు",
	sectionG:       "విభాగం G: వివరణాత్మక కథనం",
	sectionH:       "విభాగం H: ఫిర్యాదుదారు అభ్యర్థన",
	name:           "పేరు",
	contact:        "సంప్రదింపు",
	dateOfIncident: "సంఘటన తేదీ",
	timeOfIncident: "సంఘటన సమయం",
	place:          "సంఘటన స్థలం",
	offenceType:    "నేర రకం",
	confidence:     "వర్గీకరణ విశ్వసనీయత",
	phoneNumbers:   "ఫోన్ నంబర్లు",
	vehicleNumbers: "వాహన నంబర్లు",
	notIdentified:  "గుర్తించబడలేదు",
	noneExtracted:  "ఏవీ లభించలేదు",
	none:           "ఏవీ లేవు",
	noneProvided:   "అందించబడలేదు",
	notSpecified:   "పేర్కొనబడలేదు",
	toBeDetermined: "దర్యాప్తు అధికారి నిర్ణయిస్తారు",
	request: "నేను, %s, పై వివరాల ఆధారంగా ఈ ప్రథమ సమాచార నివేదికను నమోదు చేసి,\n" +
		"నిందితులపై వర్తించే చట్ట సెక్షన్ల ప్రకారం తగిన చట్టపరమైన చర్యలు\n" +
		"తీసుకోవాలని సంబంధిత అధికారులను అభ్యర్థిస్తున్నాను.",
	affirmation: "పైన అందించిన సమాచారం నా జ్ఞానం మేరకు సత్యమని ధృవీకరిస్తున్నాను.",
	signature:   "ఫిర్యాదుదారు సంతకం",
	date:        "తేదీ",
	officialUse: "అధికారిక వినియోగం కోసం మాత్రమే",
	endOfReport: "ప్రథమ సమాచార నివేదిక ముగింపు",
}

const rule = "================================================================================"

// Render produces the plain-text FIR document. language is "en" or
// "te"; anything else falls back to English.
func Render(data Data, language string) string {
	l := englishLabels
	if strings.EqualFold(strings.TrimSpace(language), "te") {
		l = teluguLabels
	}

	name := orDefault(data.Name, "N/A")
	contact := orDefault(data.Contact, "N/A")

	witness := l.noneProvided
	if data.WitnessName != "" {
		witness = data.WitnessName
		if data.WitnessContact != "" {
			witness = fmt.Sprintf("%s (%s)", data.WitnessName, data.WitnessContact)
		}
	}

	persons := l.notIdentified
	if len(data.Persons) > 0 {
		persons = strings.Join(data.Persons, ", ")
	}

	phones := l.noneExtracted
	if len(data.PhoneNumbers) > 0 {
		formatted := make([]string, len(data.PhoneNumbers))
		for i, p := range data.PhoneNumbers {
			formatted[i] = FormatPhone(p)
		}
		phones = strings.Join(formatted, ", ")
	}

	vehicles := l.none
	if len(data.VehicleNumbers) > 0 {
		vehicles = strings.Join(data.VehicleNumbers, ", ")
	}

	var sections strings.Builder
	for _, s := range data.Sections {
		fmt.Fprintf(&sections, "  - Section %s: %s\n", s.Section, s.Description)
	}
	sectionText := strings.TrimRight(sections.String(), "\n")
	if sectionText == "" {
		sectionText = "  " + l.toBeDetermined
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, center(l.title), rule)
	fmt.Fprintf(&b, "%s: %s\n", l.reference, orDefault(data.ID, "PENDING"))
	fmt.Fprintf(&b, "%s: %s\n", l.generatedOn, data.GeneratedAt.Format("02-01-2006 15:04:05"))
	fmt.Fprintf(&b, "%s: %s (%d/100)\n", l.severity, orDefault(data.SeverityLevel, "Unknown"), data.SeverityScore)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "%s\n%s\n", l.sectionA, underline(l.sectionA))
	fmt.Fprintf(&b, "%s: %s\n%s: %s\n\n", l.name, name, l.contact, contact)

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", l.sectionB, underline(l.sectionB), witness)

	fmt.Fprintf(&b, "%s\n%s\n", l.sectionC, underline(l.sectionC))
	fmt.Fprintf(&b, "%s: %s\n", l.dateOfIncident, orDefault(data.Date, l.notSpecified))
	fmt.Fprintf(&b, "%s: %s\n", l.timeOfIncident, orDefault(data.Time, l.notSpecified))
	fmt.Fprintf(&b, "%s: %s\n", l.place, orDefault(data.Location, l.notSpecified))
	fmt.Fprintf(&b, "%s: %s\n", l.offenceType, orDefault(data.OffenceType, "Unknown"))
	fmt.Fprintf(&b, "%s: %.1f%%\n\n", l.confidence, data.Confidence*100)

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", l.sectionD, underline(l.sectionD), persons)

	fmt.Fprintf(&b, "%s\n%s\n", l.sectionE, underline(l.sectionE))
	fmt.Fprintf(&b, "%s: %s\n%s: %s\n\n", l.phoneNumbers, phones, l.vehicleNumbers, vehicles)

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", l.sectionF, underline(l.sectionF), sectionText)

	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", l.sectionG, underline(l.sectionG), orDefault(data.Description, l.notSpecified))

	fmt.Fprintf(&b, "%s\n%s\n", l.sectionH, underline(l.sectionH))
	fmt.Fprintf(&b, l.request+"\n\n", name)
	fmt.Fprintf(&b, "%s\n\n\n", l.affirmation)
	fmt.Fprintf(&b, "%s: _______________________\n\n", l.signature)
	fmt.Fprintf(&b, "%s: _______________________\n\n", l.date)

	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, center(l.officialUse), rule)
	fmt.Fprintf(&b, "FIR Number:           ________________________\n")
	fmt.Fprintf(&b, "Police Station:       ________________________\n")
	fmt.Fprintf(&b, "District:             ________________________\n")
	fmt.Fprintf(&b, "Date of Registration: ________________________\n")
	fmt.Fprintf(&b, "Time of Registration: ________________________\n")
	fmt.Fprintf(&b, "Investigating Officer: _______________________\n")
	fmt.Fprintf(&b, "Officer Rank/Badge:   ________________________\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, center(l.endOfReport), rule)

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func underline(s string) string {
	return strings.Repeat("-", len([]rune(s)))
}

func center(s string) string {
	width := len(rule)
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
