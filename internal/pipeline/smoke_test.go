package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"packlens/internal"
	"packlens/internal/config"
	"packlens/internal/storage"
)

func TestSmokeDocumentToXLSX(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rawPath := filepath.Join(tmp, "pack.txt")
	content := "Buyer: H&M\nStyle Ref: SH-2291\nCOLLAR\nCollar stand height 2.5cm\nSNLS stitch SPI 12\nHem XS-5cm S-7cm\n"
	if err := os.WriteFile(rawPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := db.UpsertDocument("upload", "doc-1", "tech pack", "merch@example.com", "2026-08-30T00:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	proc := NewProcessingService(db, config.Config{})
	res, err := proc.ProcessByProviderMessageID("upload", "doc-1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped {
		t.Fatal("document skipped")
	}
	if res.Items == 0 || res.Components == 0 {
		t.Fatalf("items=%d components=%d", res.Items, res.Components)
	}

	stored, err := db.GetDocumentByID(doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.Status != "analyzed" {
		t.Fatalf("document %+v", stored)
	}

	analysis, err := db.GetAnalysisByDocumentID(doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if analysis == nil {
		t.Fatal("no analysis stored")
	}

	var env internal.Envelope
	if err := json.Unmarshal([]byte(analysis.EnvelopeJSON), &env); err != nil {
		t.Fatal(err)
	}
	if env.BaseInformation.Buyer != "H&M" {
		t.Fatalf("buyer %q", env.BaseInformation.Buyer)
	}

	out := filepath.Join(tmp, "result.xlsx")
	if err := ExportEnvelopeToXLSX(env, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestProcessDocumentSkipsNonTechpackMail(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rawPath := filepath.Join(tmp, "mail.eml")
	raw := "From: billing@example.com\r\nTo: factory@example.com\r\nSubject: Invoice March\r\nContent-Type: text/plain\r\n\r\npayment due soon\r\n"
	if err := os.WriteFile(rawPath, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := db.UpsertDocument("imap", "msg-1", "Invoice March", "billing@example.com", "2026-08-30T00:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	proc := NewProcessingService(db, config.Config{})
	res, err := proc.ProcessDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatal("mail was not skipped")
	}

	stored, err := db.GetDocumentByID(doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.Status != "skipped" {
		t.Fatalf("document %+v", stored)
	}
}
