// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"docverify/internal/config"
	"docverify/internal/core"
	"docverify/internal/detector"
	"docverify/internal/observability"
	"docverify/internal/paths"
	"docverify/internal/version"
)

// Form fields of the onboarding upload.
const (
	FieldTransporterCode = "codigoTransportador"
	FieldTransporterName = "nombreTransportador"
	FieldIDNumber        = "cedula"
	FieldDriverName      = "nombreConductor"
)

// upload maps a file part to the document it carries. An empty docType
// means the file is received but not validated.
type upload struct {
	field   string
	key     string
	docType string
}

var uploads = []upload{
	{"formatoCreacion", "formato", "formato"},
	{"documento", "cedula", "cedula"},
	{"licenciaConduccion", "licencia", ""},
	{"certificadoEPS", "eps", "eps"},
	{"certificadoARL", "arl", "arl"},
	{"certificadoPension", "pension", "pension"},
}

// maxMemory is the part of a multipart body kept in memory; the rest spills
// to temporary files.
const maxMemory = 8 << 20

// WebServer serves the upload endpoint
type WebServer struct {
	cfg       config.Web
	uploadDir string
	verifier  *core.Verifier
	observer  *observability.StandardObserver
	server    *http.Server
}

// ValidateResponse is the body of a successful upload
type ValidateResponse struct {
	Results map[string]*detector.Report `json:"resultados"`
}

// ErrorResponse is the body of a rejected request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewWebServer creates a new web server instance
func NewWebServer(cfg *config.Config, verifier *core.Verifier, observer *observability.StandardObserver) *WebServer {
	return &WebServer{
		cfg:       cfg.Web,
		uploadDir: cfg.EffectiveUploadDir(),
		verifier:  verifier,
		observer:  observer,
	}
}

// Handler returns the routes wrapped with the CORS headers
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/validar", ws.handleValidate)
	mux.HandleFunc("/health", ws.handleHealth)
	return ws.withCORS(mux)
}

// Start listens on the configured port until Stop is called
func (ws *WebServer) Start() error {
	if err := os.MkdirAll(ws.uploadDir, 0o700); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", ws.uploadDir, err)
	}

	ws.server = ws.createSecureServer(strconv.Itoa(ws.cfg.Port))
	fmt.Printf("docverify listening on http://localhost:%d\n", ws.cfg.Port)

	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on port %d failed: %w\n"+
			"Troubleshooting: try another port with --port <number>", ws.cfg.Port, err)
	}
	return nil
}

// Stop drains in-flight requests and stops the server
func (ws *WebServer) Stop(ctx context.Context) error {
	if ws.server != nil {
		return ws.server.Shutdown(ctx)
	}
	return nil
}

func (ws *WebServer) createSecureServer(port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: ws.Handler(),
		// Timeout for reading request headers (prevents slow header attacks)
		ReadHeaderTimeout: 15 * time.Second,
		// Uploads of several scanned documents
		ReadTimeout: 60 * time.Second,
		// Recognition of every document happens before the response is written
		WriteTimeout: ws.writeTimeout(),
		IdleTimeout:  60 * time.Second,
	}
}

// writeTimeout leaves room to encode the reports after the request timeout.
// Without a request timeout the write is unbounded.
func (ws *WebServer) writeTimeout() time.Duration {
	if ws.cfg.RequestTimeout <= 0 {
		return 0
	}
	return ws.cfg.RequestTimeout + 30*time.Second
}

func (ws *WebServer) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		h := responseWriter.Header()
		h.Set("Access-Control-Allow-Origin", ws.cfg.AllowedOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if request.Method == http.MethodOptions {
			responseWriter.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(responseWriter, request)
	})
}

func (ws *WebServer) handleHealth(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	versionInfo := version.Full()
	healthData := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "docverify",
		"version":   versionInfo["version"],
		"documents": ws.verifier.Types(),
		"build_info": map[string]interface{}{
			"commit":     versionInfo["commit"],
			"build_date": versionInfo["buildDate"],
			"go_version": versionInfo["goVersion"],
			"platform":   versionInfo["platform"],
		},
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(http.StatusOK)
	json.NewEncoder(responseWriter).Encode(healthData)
}

// handleValidate stores each uploaded document in a temporary file,
// validates it against the form fields and removes it.
func (ws *WebServer) handleValidate(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := observability.NewRequestID()
	obs := ws.observer.WithRequest(requestID)
	finish := obs.StartTiming("web", "validar", "")
	responseWriter.Header().Set("X-Request-ID", requestID)

	request.Body = http.MaxBytesReader(responseWriter, request.Body, ws.cfg.MaxUploadMB<<20)
	if err := request.ParseMultipartForm(maxMemory); err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ws.sendErrorWithStatus(responseWriter,
				fmt.Sprintf("Upload exceeds the %d MB limit", ws.cfg.MaxUploadMB), http.StatusRequestEntityTooLarge)
			return
		}
		ws.sendError(responseWriter, "Failed to parse form data: "+err.Error())
		return
	}
	defer request.MultipartForm.RemoveAll()

	// Missing expected values are not an error; the checks that need them
	// come back as non-matches.
	expected := detector.Expected{
		Name:            formValue(request, FieldDriverName),
		IDNumber:        formValue(request, FieldIDNumber),
		TransporterCode: formValue(request, FieldTransporterCode),
		TransporterName: formValue(request, FieldTransporterName),
	}

	ctx := request.Context()
	if ws.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ws.cfg.RequestTimeout)
		defer cancel()
	}
	ctx = observability.ContextWithRequestID(ctx, requestID)

	var requests []core.Request
	for _, u := range uploads {
		file, header, err := request.FormFile(u.field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			finish(false, map[string]interface{}{"error": err.Error()})
			ws.sendError(responseWriter, fmt.Sprintf("Failed to read %s: %v", u.field, err))
			return
		}

		path, err := ws.saveUpload(file, header)
		file.Close()
		if err != nil {
			finish(false, map[string]interface{}{"error": err.Error()})
			ws.sendErrorWithStatus(responseWriter, "Failed to store upload", http.StatusInternalServerError)
			return
		}
		defer os.Remove(path)

		if u.docType == "" {
			continue
		}
		requests = append(requests, core.Request{Key: u.key, Type: u.docType, Path: path, Expected: expected})
	}

	results, err := ws.verifier.VerifyAll(ctx, requests)
	if err != nil {
		finish(false, map[string]interface{}{"error": err.Error()})
		ws.sendErrorWithStatus(responseWriter, err.Error(), http.StatusInternalServerError)
		return
	}

	response := ValidateResponse{Results: make(map[string]*detector.Report, len(results))}
	for _, r := range results {
		response.Results[r.Key] = r.Report
	}
	finish(true, map[string]interface{}{"documents": len(results)})

	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(http.StatusOK)
	json.NewEncoder(responseWriter).Encode(response)
}

// saveUpload copies an uploaded part into the upload directory, keeping the
// extension so the recognizer can tell images from PDFs.
func (ws *WebServer) saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := paths.SafeBase(header.Filename)
	if name == "" {
		name = "upload"
	}

	out, err := os.CreateTemp(ws.uploadDir, "docverify-*-"+name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

func formValue(request *http.Request, field string) string {
	return strings.TrimSpace(request.FormValue(field))
}

// sendError sends a 400 error response
func (ws *WebServer) sendError(responseWriter http.ResponseWriter, message string) {
	ws.sendErrorWithStatus(responseWriter, message, http.StatusBadRequest)
}

// sendErrorWithStatus sends an error response with a specific HTTP status code
func (ws *WebServer) sendErrorWithStatus(responseWriter http.ResponseWriter, message string, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)
	json.NewEncoder(responseWriter).Encode(ErrorResponse{
		Success: false,
		Error:   enhanceErrorMessage(message, statusCode),
	})
}

// enhanceErrorMessage adds troubleshooting information to error messages
func enhanceErrorMessage(message string, statusCode int) string {
	switch {
	case strings.Contains(message, "Failed to parse form data"):
		return message + "\nTroubleshooting: send the documents as multipart/form-data"
	case statusCode == http.StatusInternalServerError:
		return message + "\nTroubleshooting: Check server logs for detailed error information"
	default:
		return message
	}
}
