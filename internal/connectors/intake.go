package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"packlens/internal"
	"packlens/internal/storage"
)

// IntakeService fetches mailbox messages and stores each as a document:
// the raw mail lands content-addressed on disk, the row in sqlite with
// status "fetched" for the processing service to pick up.
type IntakeService struct {
	db        *storage.DB
	rawDocDir string
	connector MailConnector
}

type IntakeResult struct {
	Fetched int
	Stored  int
}

func NewIntakeService(db *storage.DB, rawDocDir string, connector MailConnector) *IntakeService {
	return &IntakeService{db: db, rawDocDir: rawDocDir, connector: connector}
}

func (s *IntakeService) FetchAndStore(label string, max int) (IntakeResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return IntakeResult{}, err
	}

	stored := 0
	for _, msg := range messages {
		if _, err := s.Store(msg); err != nil {
			return IntakeResult{}, err
		}
		stored++
	}

	return IntakeResult{Fetched: len(messages), Stored: stored}, nil
}

func (s *IntakeService) Store(msg internal.FetchedMailMessage) (internal.DocumentRow, error) {
	hashBytes := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.rawDocDir, 0o755); err != nil {
		return internal.DocumentRow{}, err
	}

	rawPath := filepath.Join(s.rawDocDir, hash+".eml")
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, msg.Raw, 0o644); err != nil {
			return internal.DocumentRow{}, err
		}
	}

	return s.db.UpsertDocument(msg.Provider, msg.MessageID, msg.Subject, msg.From, msg.ReceivedAt, hash, rawPath, "fetched")
}
