package locale

import (
	"strings"
	"testing"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

func TestResolveKnownLocales(t *testing.T) {
	t.Parallel()

	hi := Resolve(MsgGreeting, contractx.LocaleHindi)
	en := Resolve(MsgGreeting, contractx.LocaleEnglish)
	if hi == "" || en == "" {
		t.Fatal("greeting missing for hindi or english")
	}
	if hi == en {
		t.Fatal("hindi and english greetings are identical")
	}
}

func TestResolveFallsBackToEnglish(t *testing.T) {
	t.Parallel()

	// Telugu is supported but has no catalog entries; it must read English,
	// not the raw message id.
	got := Resolve(MsgGreeting, contractx.LocaleTelugu)
	want := Resolve(MsgGreeting, contractx.LocaleEnglish)
	if got != want {
		t.Fatalf("telugu resolved %q, want english fallback %q", got, want)
	}
}

func TestResolveUnsupportedLocaleDefaultsToHindi(t *testing.T) {
	t.Parallel()

	got := Resolve(MsgGreeting, contractx.Locale("fr"))
	want := Resolve(MsgGreeting, contractx.LocaleHindi)
	if got != want {
		t.Fatalf("unsupported locale resolved %q, want hindi %q", got, want)
	}
}

func TestResolveUnknownIDReturnsID(t *testing.T) {
	t.Parallel()

	id := MessageID("no.such.message")
	if got := Resolve(id, contractx.LocaleEnglish); got != string(id) {
		t.Fatalf("unknown id resolved to %q", got)
	}
}

func TestFormatAppliesVerbs(t *testing.T) {
	t.Parallel()

	got := Format(MsgStockStatus, contractx.LocaleEnglish, 12, 3)
	if !strings.Contains(got, "12") || !strings.Contains(got, "3") {
		t.Fatalf("formatted stock status missing counts: %q", got)
	}
}

func TestCatalogHasHindiAndEnglishForEveryEntry(t *testing.T) {
	t.Parallel()

	for id, translations := range catalog {
		if _, ok := translations[contractx.LocaleHindi]; !ok {
			t.Errorf("message %s has no hindi entry", id)
		}
		if _, ok := translations[contractx.LocaleEnglish]; !ok {
			t.Errorf("message %s has no english entry", id)
		}
	}
}
