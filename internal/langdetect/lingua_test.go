package langdetect

import "testing"

func TestDetectISO6391_English(t *testing.T) {
	code := DetectISO6391("The government announced a new infrastructure spending program today.")
	if code != "en" {
		t.Fatalf("expected en, got %q", code)
	}
}

func TestDetectISO6391_Spanish(t *testing.T) {
	code := DetectISO6391("El gobierno anunció hoy un nuevo programa de inversión en infraestructura.")
	if code != "es" {
		t.Fatalf("expected es, got %q", code)
	}
}

func TestDetectISO6391_ShortSampleSkipped(t *testing.T) {
	if code := DetectISO6391("Hi"); code != "" {
		t.Fatalf("expected empty code for short sample, got %q", code)
	}
	if code := DetectISO6391("   "); code != "" {
		t.Fatalf("expected empty code for blank sample, got %q", code)
	}
}
