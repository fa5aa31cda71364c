package fir

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var refIDPattern = regexp.MustCompile(`^FIR-\d{8}-[A-F0-9]{8}$`)

func TestNewReferenceIDFormat(t *testing.T) {
	now := time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC)
	id := NewReferenceID(now)
	if !refIDPattern.MatchString(id) {
		t.Fatalf("reference id %q does not match FIR-YYYYMMDD-XXXXXXXX", id)
	}
	if !strings.HasPrefix(id, "FIR-20250114-") {
		t.Fatalf("reference id %q should embed the date 20250114", id)
	}
}

func TestNewReferenceIDIsUnique(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewReferenceID(now)
		if seen[id] {
			t.Fatalf("duplicate reference id %q", id)
		}
		seen[id] = true
	}
}

func TestFormatPhone(t *testing.T) {
	if got := FormatPhone("9876543210"); got != "+91 98765 43210" {
		t.Fatalf("FormatPhone = %q, want +91 98765 43210", got)
	}
	// Anything that is not a bare ten-digit number passes through.
	if got := FormatPhone("+91 98765 43210"); got != "+91 98765 43210" {
		t.Fatalf("FormatPhone should pass through formatted input, got %q", got)
	}
}

func sampleData() Data {
	return Data{
		ID:             "FIR-20250114-3F2A9C1B",
		GeneratedAt:    time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC),
		Name:           "Ravi Kumar",
		Contact:        "9876543210",
		WitnessName:    "Sita Devi",
		WitnessContact: "9123456789",
		Date:           "2025-01-13",
		Time:           "21:00",
		Location:       "Hyderabad",
		OffenceType:    "Theft",
		Confidence:     0.92,
		SeverityLevel:  "Medium",
		SeverityScore:  45,
		Persons:        []string{"Ravi Kumar"},
		PhoneNumbers:   []string{"9876543210"},
		VehicleNumbers: []string{"TS09AB1234"},
		Sections:       SectionsFor("Theft"),
		Description:    "My bike was stolen from the parking lot near my office.",
	}
}

func TestRenderEnglishDocument(t *testing.T) {
	doc := Render(sampleData(), "en")

	for _, want := range []string{
		"FIRST INFORMATION REPORT (FIR)",
		"FIR Reference: FIR-20250114-3F2A9C1B",
		"SECTION A: COMPLAINANT DETAILS",
		"Name: Ravi Kumar",
		"Sita Devi (9123456789)",
		"Place of Incident: Hyderabad",
		"Type of Offence: Theft",
		"Classification Confidence: 92.0%",
		"Severity: Medium (45/100)",
		"+91 98765 43210",
		"TS09AB1234",
		"Section 379: Punishment for theft",
		"My bike was stolen from the parking lot near my office.",
		"I, Ravi Kumar, hereby request",
		"FOR OFFICIAL USE ONLY",
		"END OF FIRST INFORMATION REPORT",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderTeluguDocument(t *testing.T) {
	doc := Render(sampleData(), "te")

	for _, want := range []string{
		"ప్రథమ సమాచార నివేదిక (FIR)",
		"విభాగం A: ఫిర్యాదుదారు వివరాలు",
		"పేరు: Ravi Kumar",
		"సంఘటన స్థలం: Hyderabad",
		"నేర రకం: Theft",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("telugu document missing %q", want)
		}
	}
	if strings.Contains(doc, "SECTION A: COMPLAINANT DETAILS") {
		t.Fatal("telugu document should not carry English section headers")
	}
}

func TestRenderUnknownLanguageFallsBackToEnglish(t *testing.T) {
	doc := Render(sampleData(), "fr")
	if !strings.Contains(doc, "FIRST INFORMATION REPORT (FIR)") {
		t.Fatal("unknown language should fall back to English")
	}
}

func TestRenderDefaultsForMissingFields(t *testing.T) {
	doc := Render(Data{GeneratedAt: time.Now()}, "en")

	for _, want := range []string{
		"FIR Reference: PENDING",
		"Name: N/A",
		"None provided",
		"Date of Incident: Not specified",
		"Not identified",
		"None extracted",
		"To be determined by investigating officer",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("default rendering missing %q", want)
		}
	}
}
