package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Messages shown after form submissions
const (
	msgQuoteAdded      = "Quote added successfully!"
	msgQuoteIncomplete = "Please fill in both the quote and the category."
	msgQuoteNotSaved   = "Could not save the quote. Please try again."
)

// loadTemplates parses the embedded page templates.
func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

type UIController struct {
	quotes   QuoteStore
	sessions LastViewedStore
	notifier NotificationSource
	transfer *TransferController
}

func NewUIController(quotes QuoteStore, sessions LastViewedStore, notifier NotificationSource, transfer *TransferController) *UIController {
	return &UIController{
		quotes:   quotes,
		sessions: sessions,
		notifier: notifier,
		transfer: transfer,
	}
}

// IndexPage handles GET /
// Shows a random quote from ?category= or from the stored filter.
func (controller *UIController) IndexPage(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = controller.quotes.Filter()
	}
	category = quotes.NormalizeCategory(category)

	var quote *entities.Quote
	message := ""
	q, err := controller.quotes.RandomQuote(category)
	switch {
	case errors.Is(err, services.ErrNoQuotes):
		message = quotes.NoQuotesMessage
	case err != nil:
		c.String(http.StatusInternalServerError, "Error loading quotes: %s", err.Error())
		return
	default:
		quote = &q
		controller.rememberQuote(c, q)
	}

	var notification *notify.Notification
	if controller.notifier != nil {
		if n, ok := controller.notifier.Current(); ok {
			notification = &n
		}
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Quote":        quote,
		"Message":      message,
		"Categories":   controller.quotes.Categories(),
		"Selected":     category,
		"Notification": notification,
		"Error":        c.Query("error"),
		"Notice":       c.Query("notice"),
		"CSRFField":    CSRFTokenField(c),
	})
}

// AddQuote handles POST /ui/quotes
func (controller *UIController) AddQuote(c *gin.Context) {
	_, err := controller.quotes.AddQuote(c.PostForm("text"), c.PostForm("category"))
	switch {
	case errors.Is(err, services.ErrInvalidQuote):
		redirectWithMessage(c, "error", msgQuoteIncomplete)
	case err != nil:
		log.Error("Failed to add quote", "err", err)
		redirectWithMessage(c, "error", msgQuoteNotSaved)
	default:
		redirectWithMessage(c, "notice", msgQuoteAdded)
	}
}

// SetFilter handles POST /ui/filter
func (controller *UIController) SetFilter(c *gin.Context) {
	if _, err := controller.quotes.SetFilter(c.PostForm("category")); err != nil {
		log.Error("Failed to save category filter", "err", err)
		redirectWithMessage(c, "error", "Could not save the category filter.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Import handles POST /ui/import
func (controller *UIController) Import(c *gin.Context) {
	strict, err := controller.transfer.strictMode(c)
	if err != nil {
		redirectWithMessage(c, "error", err.Error())
		return
	}
	data, err := controller.transfer.readUpload(c)
	if err != nil {
		redirectWithMessage(c, "error", "Import failed: "+err.Error())
		return
	}

	n, err := controller.transfer.importQuotes(services.TriggerUI, data, strict)
	if err != nil {
		var decodeErr *quotes.DecodeError
		if errors.As(err, &decodeErr) {
			redirectWithMessage(c, "error", "Import failed: "+decodeErr.Error())
			return
		}
		log.Error("Failed to import quotes", "err", err)
		redirectWithMessage(c, "error", "Import failed.")
		return
	}

	redirectWithMessage(c, "notice", fmt.Sprintf("Quotes imported successfully! (%d)", n))
}

func (controller *UIController) rememberQuote(c *gin.Context, q entities.Quote) {
	if controller.sessions == nil {
		return
	}
	if err := controller.sessions.PutLastViewed(c.Request.Context(), q); err != nil {
		log.Warn("Failed to store last viewed quote", "err", err)
	}
}

func redirectWithMessage(c *gin.Context, key, message string) {
	c.Redirect(http.StatusSeeOther, "/?"+key+"="+url.QueryEscape(message))
}
