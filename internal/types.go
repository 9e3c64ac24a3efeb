package internal

// ItemCategory is the closed set of structural categories the item engine
// may emit. Anything outside this set is rejected at insertion.
type ItemCategory string

const (
	CategoryMeasurement      ItemCategory = "measurement"
	CategoryStitch           ItemCategory = "stitch"
	CategoryProcess          ItemCategory = "process"
	CategoryAutomation       ItemCategory = "automation"
	CategoryConstructionNote ItemCategory = "construction_note"
)

// Relevance tags why an extracted fact matters downstream.
type Relevance string

const (
	RelevanceGauge      Relevance = "gauge"
	RelevanceFolder     Relevance = "folder"
	RelevanceRisk       Relevance = "risk"
	RelevanceAutomation Relevance = "automation"
)

// ItemSource distinguishes facts literally present in the document from
// facts inferred out of construction phrases.
type ItemSource string

const (
	SourceExplicit ItemSource = "explicit"
	SourceInferred ItemSource = "inferred"
)

// Item is a single decision-relevant finding attributed to a garment
// section. Unique per section by (Category, Name, lowercased Value).
type Item struct {
	Category  ItemCategory `json:"category"`
	Name      string       `json:"name"`
	Value     string       `json:"value"`
	Source    ItemSource   `json:"source"`
	Relevance Relevance    `json:"relevance"`
}

// SectionItems maps the seven fixed output sections to their item lists.
// All keys are always present, possibly with empty lists.
type SectionItems struct {
	Collar   []Item `json:"collar"`
	Sleeve   []Item `json:"sleeve"`
	Cuff     []Item `json:"cuff"`
	Pocket   []Item `json:"pocket"`
	Front    []Item `json:"front"`
	Back     []Item `json:"back"`
	Assembly []Item `json:"assembly"`
}

// ConstructionRow is one merged construction operation for a component.
type ConstructionRow struct {
	Operation  string `json:"operation"`
	StitchType string `json:"stitchType"`
	SPIGauge   string `json:"spiGauge"`
	Notes      string `json:"notes"`
}

// BaseMeasurementRow is a single normalized dimension for a component.
type BaseMeasurementRow struct {
	Parameter        string `json:"parameter"`
	Value            string `json:"value"`
	Unit             string `json:"unit"`
	RelatedOperation string `json:"relatedOperation"`
}

// GradingRow carries one measurement parameter across the size run.
type GradingRow struct {
	Parameter string `json:"parameter"`
	XS        string `json:"XS"`
	S         string `json:"S"`
	M         string `json:"M"`
	L         string `json:"L"`
	XL        string `json:"XL"`
	XL2       string `json:"2XL"`
	XL3       string `json:"3XL"`
}

// ComponentBundle groups the three strict tables for one garment component.
type ComponentBundle struct {
	Component             string               `json:"component"`
	ConstructionTable     []ConstructionRow    `json:"constructionTable"`
	BaseMeasurementsTable []BaseMeasurementRow `json:"baseMeasurementsTable"`
	GradingTable          []GradingRow         `json:"gradingTable"`
}

// TechnicalTable is the table-mode output envelope.
type TechnicalTable struct {
	Components []ComponentBundle `json:"components"`
}

// BaseInformation holds the free-text header fields of a tech pack.
// First match wins per field.
type BaseInformation struct {
	Buyer    string `json:"buyer"`
	OrderNo  string `json:"orderNo"`
	StyleRef string `json:"styleRef"`
	Fit      string `json:"fit"`
	Season   string `json:"season"`
	Modified string `json:"modified"`
}

// Envelope is the combined analysis result returned by the CLI and the
// HTTP server: the seven section keys inline, plus the technical table
// and base information.
type Envelope struct {
	SectionItems
	TechnicalTable  TechnicalTable  `json:"technicalTable"`
	BaseInformation BaseInformation `json:"baseInformation"`
}

// DocumentRow is one stored source document (uploaded or fetched by mail).
type DocumentRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

// FetchedMailMessage is a raw message pulled from a mailbox before it is
// stored as a document.
type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// AnalysisRow is a persisted analysis envelope for one document.
type AnalysisRow struct {
	ID           int
	DocumentID   int
	EnvelopeJSON string
	CountsJSON   string
	CreatedAt    string
}
