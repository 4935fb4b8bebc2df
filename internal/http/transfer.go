package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/services"
)

// DefaultMaxImportBytes caps the size of an uploaded quotes file.
const DefaultMaxImportBytes = 1 << 20

// ExportFilename is the attachment name of an export.
const ExportFilename = "quotes.json"

var errImportTooLarge = errors.New("quotes file is too large")

// TransferController handles JSON import and export of the quote collection.
type TransferController struct {
	quotes   QuoteStore
	activity ActivityLog
	archive  UploadArchive
	strict   bool
	maxBytes int64
}

// NewTransferController creates the controller. activity may be nil.
func NewTransferController(quotes QuoteStore, activity ActivityLog, strict bool, maxBytes int64) *TransferController {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImportBytes
	}
	return &TransferController{quotes: quotes, activity: activity, strict: strict, maxBytes: maxBytes}
}

// SetArchive stores a copy of every upload before it is imported.
func (tc *TransferController) SetArchive(archive UploadArchive) {
	tc.archive = archive
}

// ImportResponse reports the result of an import.
type ImportResponse struct {
	Imported int  `json:"imported"`
	Total    int  `json:"total"`
	Strict   bool `json:"strict"`
}

// Import handles POST /api/import
// Accepts a raw JSON body or a multipart "file" field. ?strict=true
// enables per-record validation.
func (tc *TransferController) Import(c *gin.Context) {
	strict, err := tc.strictMode(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	data, err := tc.readUpload(c)
	if err != nil {
		if errors.Is(err, errImportTooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	n, err := tc.importQuotes(services.TriggerAPI, data, strict)
	if err != nil {
		var decodeErr *quotes.DecodeError
		if errors.As(err, &decodeErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   decodeErr.Error(),
				Code:    "invalid_quotes_file",
				Details: decodeErr.Violations,
			})
			return
		}
		respondInternalError(c, err, "import quotes")
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Imported: n,
		Total:    len(tc.quotes.Quotes()),
		Strict:   strict,
	})
}

// Export handles GET /api/export
func (tc *TransferController) Export(c *gin.Context) {
	data, err := tc.quotes.Export()
	if err != nil {
		respondInternalError(c, err, "export quotes")
		return
	}
	if tc.activity != nil {
		tc.activity.LogExport(services.TriggerAPI, len(tc.quotes.Quotes()), nil)
	}

	c.Header("Content-Disposition", "attachment; filename="+ExportFilename)
	c.Data(http.StatusOK, "application/json", data)
}

// importQuotes appends the document and records the attempt.
func (tc *TransferController) importQuotes(source string, data []byte, strict bool) (int, error) {
	if tc.archive != nil {
		if _, err := tc.archive.SaveUpload(data); err != nil {
			log.Warn("Failed to archive quotes upload", "err", err)
		}
	}

	n, err := tc.quotes.Import(data, strict)
	if tc.activity != nil {
		tc.activity.LogImport(source, n, len(tc.quotes.Quotes()), strict, err)
	}
	return n, err
}

func (tc *TransferController) strictMode(c *gin.Context) (bool, error) {
	raw, ok := c.GetQuery("strict")
	if !ok || raw == "" {
		return tc.strict, nil
	}
	strict, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid strict value %q", raw)
	}
	return strict, nil
}

// readUpload returns the uploaded document from a multipart "file" field or
// the raw request body.
func (tc *TransferController) readUpload(c *gin.Context) ([]byte, error) {
	var r io.Reader = c.Request.Body

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("file is required")
		}
		if fileHeader.Size > tc.maxBytes {
			return nil, errImportTooLarge
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, tc.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > tc.maxBytes {
		return nil, errImportTooLarge
	}
	return data, nil
}
