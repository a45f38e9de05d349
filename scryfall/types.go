package scryfall

// SetDescriptor identifies one importable card set.
type SetDescriptor struct {
	Object    string `json:"object"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	CardCount int    `json:"card_count"`
	SearchURI string `json:"search_uri"`
}

// CardFace holds the per-face data of a multi-faced card. Double-faced
// layouts keep mana cost on the faces instead of the top level.
type CardFace struct {
	Name     string `json:"name"`
	ManaCost string `json:"mana_cost"`
	TypeLine string `json:"type_line"`
}

// Prices is the per-currency price block of a card. Values are decimal
// strings; nil means the market has no price for that finish.
type Prices struct {
	USD     *string `json:"usd"`
	USDFoil *string `json:"usd_foil"`
	EUR     *string `json:"eur"`
	EURFoil *string `json:"eur_foil"`
	Tix     *string `json:"tix"`
}

// CardRecord is the raw card representation as returned by the API.
// It is read-only input to the mapper and is never mutated.
type CardRecord struct {
	Object          string     `json:"object"`
	Name            string     `json:"name"`
	Set             string     `json:"set"`
	SetName         string     `json:"set_name"`
	CollectorNumber string     `json:"collector_number"`
	Layout          string     `json:"layout"`
	ManaCost        string     `json:"mana_cost"`
	CardFaces       []CardFace `json:"card_faces"`
	TypeLine        string     `json:"type_line"`
	ColorIdentity   []string   `json:"color_identity"`
	Prices          Prices     `json:"prices"`
}

type setList struct {
	Data []SetDescriptor `json:"data"`
}

type cardPage struct {
	Object   string       `json:"object"`
	Data     []CardRecord `json:"data"`
	HasMore  bool         `json:"has_more"`
	NextPage string       `json:"next_page"`
}
