package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"packlens/internal"
	"packlens/internal/config"
	"packlens/internal/connectors"
	gmailconnector "packlens/internal/connectors/gmail"
	imapconnector "packlens/internal/connectors/imap"
	"packlens/internal/pipeline"
	"packlens/internal/storage"
)

// Service polls a mailbox for tech pack mails, analyzes them, and
// optionally exports each analysis as JSON and XLSX into the output dir.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("intake cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.IntakeIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.IntakeProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	intake := connectors.NewIntakeService(s.db, s.cfg.RawDocDir, mailConnector)
	fetchResult, err := intake.FetchAndStore(s.cfg.IntakeLabel, s.cfg.IntakeFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	processedDocs, _, err := processor.ProcessPending(s.cfg.IntakeProcessBatch, provider)
	if err != nil {
		return err
	}

	if s.cfg.IntakeAutoExport {
		if err := s.exportAnalyzed(provider); err != nil {
			return err
		}
	}

	fmt.Printf("intake cycle done provider=%s fetched=%d stored=%d analyzed=%d\n", provider, fetchResult.Fetched, fetchResult.Stored, processedDocs)
	return nil
}

func (s *Service) exportAnalyzed(provider string) error {
	docs, err := s.db.ListDocumentsByStatus("analyzed", 200)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc.Provider != provider {
			continue
		}
		analysis, err := s.db.GetAnalysisByDocumentID(doc.ID)
		if err != nil {
			return err
		}
		if analysis == nil {
			continue
		}

		var envelope internal.Envelope
		if err := json.Unmarshal([]byte(analysis.EnvelopeJSON), &envelope); err != nil {
			return err
		}

		base := fmt.Sprintf("%d_%s", doc.ID, sanitizeMessageID(doc.MessageID))
		outDir := filepath.Join(s.cfg.OutputDir, "intake")
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, base+".json"), []byte(analysis.EnvelopeJSON), 0o644); err != nil {
			return err
		}
		if err := pipeline.ExportEnvelopeToXLSX(envelope, filepath.Join(outDir, base+".xlsx")); err != nil {
			return err
		}
		_ = s.db.UpdateDocumentStatus(doc.ID, "exported")
	}
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported intake provider: %s", provider)
	}
}

func sanitizeMessageID(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
