package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"packlens/internal"
	"packlens/internal/config"
)

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := bytes.NewBuffer(nil)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func testServer() *Server {
	return New(config.Config{ServerAddr: ":0", MaxUploadMB: 1})
}

func TestHandleAnalyze(t *testing.T) {
	body, contentType := multipartUpload(t, "pack.txt",
		"Buyer: H&M\nCOLLAR\nCollar stand height 2.5cm\nSNLS stitch SPI 12\n")

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var env internal.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.BaseInformation.Buyer != "H&M" {
		t.Fatalf("buyer %q", env.BaseInformation.Buyer)
	}
	if len(env.Collar) == 0 {
		t.Fatalf("collar items missing: %s", rec.Body.String())
	}
	if len(env.TechnicalTable.Components) != 1 {
		t.Fatalf("components %v", env.TechnicalTable.Components)
	}
}

func TestHandleAnalyzeWrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleAnalyzeMissingFileField(t *testing.T) {
	body := bytes.NewBuffer(nil)
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("note", "hello"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleAnalyzeUnreadableDocumentGetsSkeleton(t *testing.T) {
	body, contentType := multipartUpload(t, "broken.pdf", "not a pdf at all")

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var env internal.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Collar == nil || len(env.Collar) != 0 {
		t.Fatalf("collar %v", env.Collar)
	}
	if len(env.TechnicalTable.Components) != 0 {
		t.Fatalf("components %v", env.TechnicalTable.Components)
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("body %q", rec.Body.String())
	}
}
