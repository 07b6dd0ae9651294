package handlers

import (
	"errors"
	"log"
	"net/http"

	request "tovyalla_billing/internal/adapter/http/dto/request"
	response "tovyalla_billing/internal/adapter/http/dto/response"
	"tovyalla_billing/internal/usecase"
	"tovyalla_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidDocumentPayload = pkg.NewDomainErrorSimple("INVALID_DOCUMENT_INPUT", "Invalid document payload", http.StatusBadRequest)
)

// DocumentHandler handles HTTP requests for contract, proposal and
// change-order documents.

type DocumentHandler struct {
	usecase usecase.IDocumentUseCase
}

func NewDocumentHandler(uc usecase.IDocumentUseCase) *DocumentHandler {
	return &DocumentHandler{usecase: uc}
}

// GetPreview rebuilds the priced milestone schedule from the project's
// current expense records without applying any session edits.
func (h *DocumentHandler) GetPreview(c *gin.Context) {
	projectID := c.Param("project_id")
	documentType := c.Param("document_type")
	log.Printf("[document][handler] preview start project_id=%s document_type=%s", projectID, documentType)

	preview, err := h.usecase.Preview(c.Request.Context(), projectID, documentType, usecase.DocumentEdits{})
	if err != nil {
		log.Printf("[document][handler] preview failed project_id=%s err=%v", projectID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDocumentPreview(preview))
}

// PostPreview rebuilds the schedule and applies the session's pending edits
// (price edits, and for change orders a replacement line-item set).
func (h *DocumentHandler) PostPreview(c *gin.Context) {
	projectID := c.Param("project_id")
	documentType := c.Param("document_type")
	log.Printf("[document][handler] preview-with-edits start project_id=%s document_type=%s", projectID, documentType)

	var payload request.DocumentPreviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidDocumentPayload.HTTPStatus, errInvalidDocumentPayload.ToHTTPError())
		return
	}

	preview, err := h.usecase.Preview(c.Request.Context(), projectID, documentType, resolveEdits(payload.PriceEdits, payload.LineItems))
	if err != nil {
		log.Printf("[document][handler] preview-with-edits failed project_id=%s err=%v", projectID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDocumentPreview(preview))
}

// Generate applies the session edits, saves the milestone set as a full
// replacement, renders the document and records the result.
func (h *DocumentHandler) Generate(c *gin.Context) {
	projectID := c.Param("project_id")
	documentType := c.Param("document_type")
	log.Printf("[document][handler] generate start project_id=%s document_type=%s", projectID, documentType)

	var payload request.DocumentGenerateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidDocumentPayload.HTTPStatus, errInvalidDocumentPayload.ToHTTPError())
		return
	}

	documentNumber := payload.ResolveDocumentNumber()
	if documentNumber == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	cmd := usecase.GenerateDocumentCommand{
		Edits:          resolveEdits(payload.PriceEdits, payload.LineItems),
		DocumentNumber: documentNumber,
		Context:        payload.Context,
	}

	doc, err := h.usecase.Generate(c.Request.Context(), projectID, documentType, cmd)
	if err != nil {
		log.Printf("[document][handler] generate failed project_id=%s err=%v", projectID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[document][handler] generate success project_id=%s document_id=%s file_url=%s", projectID, doc.ID, doc.FileURL)

	c.JSON(http.StatusCreated, response.FromGeneratedDocument(doc))
}

// ListByProjectID returns the project's generated-document history,
// newest first.
func (h *DocumentHandler) ListByProjectID(c *gin.Context) {
	projectID := c.Param("project_id")

	docs, err := h.usecase.ListByProjectID(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[document][handler] list failed project_id=%s err=%v", projectID, err)
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := make([]response.GeneratedDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, response.FromGeneratedDocument(d))
	}
	c.JSON(http.StatusOK, out)
}

// resolveEdits translates the request edits into the use case command. A nil
// line_items array means "keep the saved items"; a present one, even empty,
// replaces them.
func resolveEdits(priceEdits []request.PriceEditRequest, lineItems []request.LineItemRequest) usecase.DocumentEdits {
	edits := usecase.DocumentEdits{}
	for _, e := range priceEdits {
		edits.PriceEdits = append(edits.PriceEdits, usecase.PriceEdit{
			MilestoneID:   e.MilestoneID,
			CustomerPrice: e.CustomerPrice,
		})
	}
	if lineItems != nil {
		edits.LineItems = make([]usecase.LineItemInput, 0, len(lineItems))
		for _, it := range lineItems {
			edits.LineItems = append(edits.LineItems, usecase.LineItemInput{
				Name:          it.Name,
				Description:   it.Description,
				CostAmount:    it.CostAmount,
				CustomerPrice: it.CustomerPrice,
			})
		}
	}
	return edits
}

func mapDocumentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID), errors.Is(err, usecase.ErrInvalidDocumentType):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrExpenseSourceUnavailable):
		return pkg.NewDomainErrorSimple("EXPENSE_SOURCE_UNAVAILABLE", "Expense source unavailable", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrRenderFailed):
		return pkg.NewDomainErrorSimple("DOCUMENT_RENDER_FAILED", "Document rendering failed", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
