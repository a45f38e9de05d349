package card_test

import (
	"testing"

	"magiccards.GO/scryfall"
	"magiccards.GO/service/card"
)

func strPtr(s string) *string { return &s }

func sampleCard() scryfall.CardRecord {
	return scryfall.CardRecord{
		Object:          "card",
		Name:            "Questing Druid",
		Set:             "woe",
		SetName:         "Wilds of Eldraine",
		CollectorNumber: "9",
		Layout:          "normal",
		ManaCost:        "{1}{G}",
		TypeLine:        "Creature — Human Druid",
		ColorIdentity:   []string{"G", "R"},
		Prices:          scryfall.Prices{USD: strPtr("0.25"), USDFoil: strPtr("1.10")},
	}
}

func TestSKUFor_Padding(t *testing.T) {
	cases := []struct {
		collector string
		want      string
	}{
		{"1", "mtg_woe_001"},
		{"12", "mtg_woe_012"},
		{"123", "mtg_woe_123"},
		{"1234", "mtg_woe_1234"},
		{"12a", "mtg_woe_12a"},
	}
	for _, c := range cases {
		if got := card.SKUFor("woe", c.collector); got != c.want {
			t.Errorf("SKUFor(woe, %q) = %q, want %q", c.collector, got, c.want)
		}
	}
}

func TestSKUFor_Deterministic(t *testing.T) {
	a := card.SKUFor("woe", "42")
	b := card.SKUFor("woe", "42")
	if a != b {
		t.Errorf("SKUFor not deterministic: %q vs %q", a, b)
	}
}

func TestMapCard(t *testing.T) {
	m, ok := card.MapCard(sampleCard())
	if !ok {
		t.Fatal("MapCard skipped a card record")
	}
	if m.SKU != "mtg_woe_009" {
		t.Errorf("SKU = %q, want mtg_woe_009", m.SKU)
	}
	if m.URLKey != "Questing-Druid-mtg_woe_009" {
		t.Errorf("URLKey = %q", m.URLKey)
	}
	if m.Price != 0.25 {
		t.Errorf("Price = %v, want 0.25", m.Price)
	}
	if m.Fields.ManaCost != "{1}{G}" {
		t.Errorf("ManaCost = %q", m.Fields.ManaCost)
	}
	if m.Fields.ColorIdentity != "G,R" {
		t.Errorf("ColorIdentity = %q", m.Fields.ColorIdentity)
	}
	// Stored collector number stays unpadded.
	if m.Fields.CollectorNumber != "9" {
		t.Errorf("CollectorNumber = %q, want 9", m.Fields.CollectorNumber)
	}
}

func TestMapCard_SkipsNonCards(t *testing.T) {
	rec := sampleCard()
	rec.Object = "token"
	if _, ok := card.MapCard(rec); ok {
		t.Error("MapCard accepted a non-card object")
	}
}

func TestMapCard_TransformManaCost(t *testing.T) {
	rec := sampleCard()
	rec.Layout = "transform"
	rec.ManaCost = ""
	rec.CardFaces = []scryfall.CardFace{
		{Name: "Front", ManaCost: "{2}{B}"},
		{Name: "Back", ManaCost: ""},
	}
	m, ok := card.MapCard(rec)
	if !ok {
		t.Fatal("MapCard skipped a transform card")
	}
	if m.Fields.ManaCost != "{2}{B}" {
		t.Errorf("transform ManaCost = %q, want front face cost", m.Fields.ManaCost)
	}

	// Non-transform records keep the top-level cost.
	m2, _ := card.MapCard(sampleCard())
	if m2.Fields.ManaCost != "{1}{G}" {
		t.Errorf("normal ManaCost = %q, want {1}{G}", m2.Fields.ManaCost)
	}
}

func TestMapCard_MissingPrices(t *testing.T) {
	rec := sampleCard()
	rec.Prices = scryfall.Prices{}
	m, _ := card.MapCard(rec)
	if m.Price != 0 {
		t.Errorf("Price = %v, want 0 for unpriced card", m.Price)
	}
	if m.VariantPrice("foil") != 10 {
		t.Errorf("foil VariantPrice = %v, want placeholder 10", m.VariantPrice("foil"))
	}
	if m.VariantPrice("standard") != 10 {
		t.Errorf("standard VariantPrice = %v, want placeholder 10", m.VariantPrice("standard"))
	}
}

func TestVariantSKU(t *testing.T) {
	if got := card.VariantSKU("mtg_woe_001", "foil"); got != "mtg_woe_001-foil" {
		t.Errorf("VariantSKU = %q", got)
	}
}

func TestNormalizedFields_AttributeMap(t *testing.T) {
	m, _ := card.MapCard(sampleCard())
	attrs, err := m.Fields.AttributeMap()
	if err != nil {
		t.Fatalf("AttributeMap: %v", err)
	}
	want := map[string]string{
		"card_set":         "Wilds of Eldraine",
		"mana_cost":        "{1}{G}",
		"color_identity":   "G,R",
		"collector_number": "9",
		"type_line":        "Creature — Human Druid",
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attrs[%q] = %q, want %q", k, attrs[k], v)
		}
	}
	if len(attrs) != len(want) {
		t.Errorf("attrs has %d entries, want %d: %v", len(attrs), len(want), attrs)
	}
}
