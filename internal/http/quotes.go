package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/services"
)

// QuotesController serves the quote collection API.
type QuotesController struct {
	quotes   QuoteStore
	sessions LastViewedStore
}

func NewQuotesController(quotes QuoteStore, sessions LastViewedStore) *QuotesController {
	return &QuotesController{quotes: quotes, sessions: sessions}
}

// AddQuoteRequest is the body of POST /api/quotes.
type AddQuoteRequest struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// FilterRequest is the body of PUT /api/filter.
type FilterRequest struct {
	Category string `json:"category"`
}

// ListQuotes handles GET /api/quotes
func (qc *QuotesController) ListQuotes(c *gin.Context) {
	qs := qc.quotes.Quotes()
	c.JSON(http.StatusOK, gin.H{
		"quotes": qs,
		"total":  len(qs),
	})
}

// CreateQuote handles POST /api/quotes
func (qc *QuotesController) CreateQuote(c *gin.Context) {
	var req AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, services.ErrInvalidQuote.Error())
		return
	}

	q, err := qc.quotes.AddQuote(req.Text, req.Category)
	if errors.Is(err, services.ErrInvalidQuote) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "add quote")
		return
	}

	respondCreated(c, q)
}

// RandomQuote handles GET /api/quotes/random?category=
// The picked quote is remembered for the session.
func (qc *QuotesController) RandomQuote(c *gin.Context) {
	q, err := qc.quotes.RandomQuote(c.Query("category"))
	if errors.Is(err, services.ErrNoQuotes) {
		respondNotFound(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "random quote")
		return
	}

	qc.rememberQuote(c, q)
	c.JSON(http.StatusOK, q)
}

// LastViewed handles GET /api/quotes/last-viewed
func (qc *QuotesController) LastViewed(c *gin.Context) {
	if qc.sessions == nil {
		respondNotFound(c, "no quote viewed in this session")
		return
	}
	q, ok := qc.sessions.LastViewed(c.Request.Context())
	if !ok {
		respondNotFound(c, "no quote viewed in this session")
		return
	}
	c.JSON(http.StatusOK, q)
}

// Categories handles GET /api/categories
func (qc *QuotesController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": qc.quotes.Categories()})
}

// GetFilter handles GET /api/filter
func (qc *QuotesController) GetFilter(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"category": qc.quotes.Filter()})
}

// SetFilter handles PUT /api/filter
func (qc *QuotesController) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	category, err := qc.quotes.SetFilter(req.Category)
	if err != nil {
		respondInternalError(c, err, "set filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (qc *QuotesController) rememberQuote(c *gin.Context, q entities.Quote) {
	if qc.sessions == nil {
		return
	}
	if err := qc.sessions.PutLastViewed(c.Request.Context(), q); err != nil {
		log.Warn("Failed to store last viewed quote", "err", err)
	}
}
