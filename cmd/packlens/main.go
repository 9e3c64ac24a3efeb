package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"packlens/internal"
	"packlens/internal/config"
	"packlens/internal/connectors"
	gmailconnector "packlens/internal/connectors/gmail"
	imapconnector "packlens/internal/connectors/imap"
	"packlens/internal/pipeline"
	"packlens/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		if len(os.Args) < 3 || strings.TrimSpace(os.Args[2]) == "" {
			fmt.Fprintln(os.Stderr, "usage: packlens analyze <document-path>")
			os.Exit(1)
		}
		envelope := pipeline.AnalyzeFile(os.Args[2])
		blob, err := json.MarshalIndent(envelope, "", "  ")
		must(err)
		fmt.Println(string(blob))
	case "docs:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "imap|gmail")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])

		cfg, db := open()
		defer db.Close()
		conn, err := makeConnector(cfg, *provider)
		must(err)
		intake := connectors.NewIntakeService(db, cfg.RawDocDir, conn)
		result, err := intake.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("docs fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "docs:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "", "imap|gmail (empty = any)")
		messageID := fs.String("messageId", "", "specific message-id")
		batch := fs.Int("batch", 20, "batch size")
		_ = fs.Parse(os.Args[2:])

		cfg, db := open()
		defer db.Close()
		processor := pipeline.NewProcessingService(db, cfg)
		if strings.TrimSpace(*messageID) != "" {
			res, err := processor.ProcessByProviderMessageID(*provider, *messageID)
			must(err)
			fmt.Printf("analyzed document id=%d items=%d components=%d\n", res.DocumentID, res.Items, res.Components)
			return
		}
		processedDocs, processedItems, err := processor.ProcessPending(*batch, *provider)
		must(err)
		fmt.Printf("analyzed pending documents=%d items=%d\n", processedDocs, processedItems)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.Int("docId", 0, "internal document id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *docID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--docId and --out are required"))
		}

		_, db := open()
		defer db.Close()
		analysis, err := db.GetAnalysisByDocumentID(*docID)
		must(err)
		if analysis == nil {
			must(fmt.Errorf("no analysis for docId=%d", *docID))
		}
		var envelope internal.Envelope
		must(json.Unmarshal([]byte(analysis.EnvelopeJSON), &envelope))
		must(pipeline.ExportEnvelopeToXLSX(envelope, *out))
		fmt.Printf("exported docId=%d to %s\n", *docID, *out)
	default:
		usage()
		os.Exit(1)
	}
}

func open() (config.Config, *storage.DB) {
	cfg, err := config.Load()
	must(err)
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return cfg, db
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func usage() {
	fmt.Println("usage: packlens <command>")
	fmt.Println("commands:")
	fmt.Println("  analyze <document-path>")
	fmt.Println("  docs:fetch --provider=imap|gmail --label=INBOX --max=50")
	fmt.Println("  docs:process [--provider=imap|gmail] [--messageId=...] [--batch=20]")
	fmt.Println("  export:xlsx --docId=1 --out=./out/result.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
