package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"packlens/internal"
	"packlens/internal/config"
	"packlens/internal/extract"
	"packlens/internal/storage"
	"packlens/internal/techpack"
)

// ProcessingService turns stored documents into persisted analyses.
type ProcessingService struct {
	db       *storage.DB
	cfg      config.Config
	analyzer *techpack.Analyzer
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, analyzer: techpack.NewAnalyzer(nil)}
}

type ProcessResult struct {
	DocumentID int
	Items      int
	Components int
	Skipped    bool
}

func (s *ProcessingService) ProcessByProviderMessageID(provider, messageID string) (ProcessResult, error) {
	doc, err := s.db.MustDocumentByProviderMessageID(provider, messageID)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.ProcessDocument(doc)
}

func (s *ProcessingService) ProcessPending(limit int, provider string) (int, int, error) {
	pending, err := s.db.ListDocumentsByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	processedDocs := 0
	processedItems := 0
	for _, doc := range pending {
		if provider != "" && doc.Provider != provider {
			continue
		}
		res, err := s.ProcessDocument(doc)
		if err != nil {
			return processedDocs, processedItems, err
		}
		if res.Skipped {
			continue
		}
		processedDocs++
		processedItems += res.Items
	}
	return processedDocs, processedItems, nil
}

// ProcessDocument extracts lines from the stored raw document, runs both
// classification engines, and persists the envelope. Extraction failures
// are logged and recovered as the empty skeleton; mails that do not look
// like tech packs are skipped.
func (s *ProcessingService) ProcessDocument(doc internal.DocumentRow) (ProcessResult, error) {
	raw, err := os.ReadFile(doc.RawRef)
	if err != nil {
		return ProcessResult{}, err
	}

	var lines []string
	if strings.EqualFold(filepath.Ext(doc.RawRef), ".eml") {
		mail, err := extract.FromEmailRaw(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mail extract failed: doc=%d: %v\n", doc.ID, err)
		} else {
			subject := mail.Subject
			if strings.TrimSpace(subject) == "" {
				subject = doc.Subject
			}
			detect := DetectTechpack(subject, mail.TextBody, mail.AttachmentNames)
			if !detect.IsTechpack {
				_ = s.db.UpdateDocumentStatus(doc.ID, "skipped")
				return ProcessResult{DocumentID: doc.ID, Skipped: true}, nil
			}
			lines = mail.Lines
		}
	} else {
		extracted, err := extract.LinesFromBytes(filepath.Base(doc.RawRef), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "document extract failed: doc=%d: %v\n", doc.ID, err)
		} else {
			lines = extracted
		}
	}

	envelope := s.analyzer.Analyze(lines)

	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		return ProcessResult{}, err
	}
	items := countItems(envelope.SectionItems)
	counts := map[string]int{
		"lines":      len(lines),
		"items":      items,
		"components": len(envelope.TechnicalTable.Components),
	}
	countsJSON, _ := json.Marshal(counts)

	if err := s.db.UpsertAnalysis(doc.ID, string(envelopeJSON), string(countsJSON)); err != nil {
		return ProcessResult{}, err
	}
	if err := s.db.UpdateDocumentStatus(doc.ID, "analyzed"); err != nil {
		return ProcessResult{}, err
	}

	return ProcessResult{
		DocumentID: doc.ID,
		Items:      items,
		Components: len(envelope.TechnicalTable.Components),
	}, nil
}

func countItems(sections internal.SectionItems) int {
	return len(sections.Collar) + len(sections.Sleeve) + len(sections.Cuff) +
		len(sections.Pocket) + len(sections.Front) + len(sections.Back) + len(sections.Assembly)
}
