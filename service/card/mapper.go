package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"magiccards.GO/scryfall"
)

// Variant kinds every card is sold as. The composite SKU of a variant is
// "<parent sku>-<kind>".
var VariantKinds = []string{"standard", "foil"}

// placeholderPrice is used for variants without a market price.
const placeholderPrice = 10

// NormalizedFields are the card attributes persisted on the configurable
// product. Tags double as the EAV attribute codes.
type NormalizedFields struct {
	CardSet         string `mapstructure:"card_set"`
	ManaCost        string `mapstructure:"mana_cost"`
	ColorIdentity   string `mapstructure:"color_identity"`
	CollectorNumber string `mapstructure:"collector_number"`
	TypeLine        string `mapstructure:"type_line"`
}

// AttributeCodes lists the codes the importer writes, in install order.
func AttributeCodes() []string {
	return []string{"card_set", "mana_cost", "color_identity", "collector_number", "type_line", "card_type"}
}

// AttributeMap flattens the fields into an attribute_code -> value map.
func (f NormalizedFields) AttributeMap() (map[string]string, error) {
	m := map[string]string{}
	if err := mapstructure.Decode(f, &m); err != nil {
		return nil, fmt.Errorf("flatten card fields: %w", err)
	}
	return m, nil
}

// Mapped is the mapper output for one card: the stable product key plus
// the normalized field set.
type Mapped struct {
	SKU       string
	Name      string
	URLKey    string
	Price     float64
	FoilPrice float64
	Fields    NormalizedFields
}

// SKUFor derives the stable product key for a card. It depends on
// (set code, collector number) only, so re-imports land on the same row.
func SKUFor(setCode, collectorNumber string) string {
	return "mtg_" + setCode + "_" + padCollector(collectorNumber)
}

// VariantSKU derives the composite key of one variant.
func VariantSKU(parentSKU, kind string) string {
	return parentSKU + "-" + kind
}

// MapCard normalizes a raw card record. ok is false when the record is
// not a card (pagination metadata and other objects mixed into a feed).
func MapCard(rec scryfall.CardRecord) (Mapped, bool) {
	if rec.Object != "card" {
		return Mapped{}, false
	}

	sku := SKUFor(rec.Set, rec.CollectorNumber)

	// Double-faced cards keep mana cost on the faces.
	mana := rec.ManaCost
	if rec.Layout == "transform" && len(rec.CardFaces) > 0 {
		mana = rec.CardFaces[0].ManaCost
	}

	return Mapped{
		SKU:       sku,
		Name:      rec.Name,
		URLKey:    strings.ReplaceAll(rec.Name, " ", "-") + "-" + sku,
		Price:     priceOf(rec.Prices.USD, 0),
		FoilPrice: priceOf(rec.Prices.USDFoil, placeholderPrice),
		Fields: NormalizedFields{
			CardSet:         rec.SetName,
			ManaCost:        mana,
			ColorIdentity:   strings.Join(rec.ColorIdentity, ","),
			CollectorNumber: rec.CollectorNumber,
			TypeLine:        rec.TypeLine,
		},
	}, true
}

// VariantPrice returns the price of one variant kind.
func (m Mapped) VariantPrice(kind string) float64 {
	if kind == "foil" {
		return m.FoilPrice
	}
	return placeholderPrice
}

// padCollector zero-pads a collector number to width 3 for the SKU. The
// number is kept as a string: promo numbers like "123a" exist.
func padCollector(n string) string {
	for len(n) < 3 {
		n = "0" + n
	}
	return n
}

func priceOf(p *string, def float64) float64 {
	if p == nil {
		return def
	}
	v, err := strconv.ParseFloat(*p, 64)
	if err != nil {
		return def
	}
	return v
}
