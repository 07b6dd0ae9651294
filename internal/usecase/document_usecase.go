package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/domain/pricing"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProjectID         = errors.New("invalid project id")
	ErrInvalidDocumentType      = errors.New("invalid document type")
	ErrExpenseSourceUnavailable = errors.New("expense source unavailable")
	ErrRenderFailed             = errors.New("document render failed")
)

// PriceEdit replaces one milestone's customer price. The value arrives as the
// raw string the user typed; parse-or-zero is pricing's job.
type PriceEdit struct {
	MilestoneID   string
	CustomerPrice string
}

// LineItemInput is one change-order line item as edited in the session, all
// amounts still raw.
type LineItemInput struct {
	Name          string
	Description   string
	CostAmount    string
	CustomerPrice string
}

// DocumentEdits carries the session's pending edits into a preview or
// generate call. A non-nil LineItems set replaces the line items derived from
// the saved records; nil keeps them.
type DocumentEdits struct {
	PriceEdits []PriceEdit
	LineItems  []LineItemInput
}

// GenerateDocumentCommand is the full generate request: the session edits
// plus the opaque render context (company identity, project address) and the
// document number the caller assigned.
type GenerateDocumentCommand struct {
	Edits          DocumentEdits
	DocumentNumber string
	Context        json.RawMessage
}

// DocumentPreview is one priced snapshot of a document: the derived
// schedule, the change-order line items, the aggregate figures and the
// payment schedule exactly as rendering would receive it.
type DocumentPreview struct {
	ProjectID    string
	DocumentType entities.DocumentType
	Milestones   []entities.Milestone
	LineItems    []entities.ChangeOrderLineItem
	Totals       pricing.Totals
	Render       pricing.RenderPayload
}

// IDocumentUseCase exposes the contract/proposal/change-order flows.
//
//   - Preview rebuilds the priced schedule from the current expense records.
//   - Generate persists the schedule (full replace) and only then renders;
//     a failed save never reaches the renderer, a failed render leaves the
//     saved schedule in place.

type IDocumentUseCase interface {
	Preview(ctx context.Context, projectID, documentType string, edits DocumentEdits) (DocumentPreview, error)
	Generate(ctx context.Context, projectID, documentType string, cmd GenerateDocumentCommand) (entities.GeneratedDocument, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.GeneratedDocument, error)
}

type DocumentUseCase struct {
	engine        *pricing.Engine
	expenseSource interfaces.IExpenseSource
	milestoneRepo interfaces.IMilestoneRepository
	documentRepo  interfaces.IDocumentRepository
	renderer      interfaces.IDocumentRenderer
}

var _ IDocumentUseCase = (*DocumentUseCase)(nil)

func NewDocumentUseCase(
	engine *pricing.Engine,
	expenseSource interfaces.IExpenseSource,
	milestoneRepo interfaces.IMilestoneRepository,
	documentRepo interfaces.IDocumentRepository,
	renderer interfaces.IDocumentRenderer,
) *DocumentUseCase {
	return &DocumentUseCase{
		engine:        engine,
		expenseSource: expenseSource,
		milestoneRepo: milestoneRepo,
		documentRepo:  documentRepo,
		renderer:      renderer,
	}
}

func (u *DocumentUseCase) Preview(ctx context.Context, projectID, documentType string, edits DocumentEdits) (DocumentPreview, error) {
	preview, _, err := u.buildPreview(ctx, projectID, documentType, edits)
	return preview, err
}

func (u *DocumentUseCase) Generate(ctx context.Context, projectID, documentType string, cmd GenerateDocumentCommand) (entities.GeneratedDocument, error) {
	preview, project, err := u.buildPreview(ctx, projectID, documentType, cmd.Edits)
	if err != nil {
		return entities.GeneratedDocument{}, err
	}

	// Save first, render second. The PUT is a total overwrite of the saved
	// schedule, and rendering must not run when the save failed.
	records := pricing.ToRecords(preview.Milestones, preview.LineItems, preview.DocumentType)
	if err := u.milestoneRepo.ReplaceForProject(ctx, preview.ProjectID, records); err != nil {
		log.Printf("[document][usecase] milestone save failed project_id=%s doc_type=%s err=%v", preview.ProjectID, preview.DocumentType, err)
		return entities.GeneratedDocument{}, err
	}
	log.Printf("[document][usecase] milestones saved project_id=%s doc_type=%s records=%d", preview.ProjectID, preview.DocumentType, len(records))

	payload, err := buildRenderContext(cmd.Context, project, preview, cmd.DocumentNumber)
	if err != nil {
		return entities.GeneratedDocument{}, err
	}

	fileURL, err := u.renderer.RenderDocument(ctx, payload)
	if err != nil {
		log.Printf("[document][usecase] render failed project_id=%s doc_type=%s err=%v", preview.ProjectID, preview.DocumentType, err)
		return entities.GeneratedDocument{}, ErrRenderFailed
	}
	log.Printf("[document][usecase] render success project_id=%s doc_type=%s file_url=%s", preview.ProjectID, preview.DocumentType, fileURL)

	doc := entities.GeneratedDocument{
		ID:             uuid.NewString(),
		ProjectID:      preview.ProjectID,
		DocumentType:   preview.DocumentType,
		DocumentNumber: strings.TrimSpace(cmd.DocumentNumber),
		FileURL:        fileURL,
		GrandTotal:     preview.Render.GrandTotal,
		CreatedAt:      time.Now().UTC(),
	}
	created, err := u.documentRepo.Create(ctx, doc)
	if err != nil {
		log.Printf("[document][usecase] document create failed project_id=%s document_id=%s err=%v", preview.ProjectID, doc.ID, err)
		return entities.GeneratedDocument{}, err
	}
	log.Printf("[document][usecase] generate success project_id=%s document_id=%s grand_total=%.2f", preview.ProjectID, created.ID, created.GrandTotal)
	return created, nil
}

func (u *DocumentUseCase) ListByProjectID(ctx context.Context, projectID string) ([]entities.GeneratedDocument, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return u.documentRepo.ListByProjectID(ctx, projectID)
}

func (u *DocumentUseCase) buildPreview(ctx context.Context, projectID, documentType string, edits DocumentEdits) (DocumentPreview, json.RawMessage, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return DocumentPreview{}, nil, ErrInvalidProjectID
	}
	docType, ok := entities.ParseDocumentType(documentType)
	if !ok {
		return DocumentPreview{}, nil, ErrInvalidDocumentType
	}

	expenses, err := u.expenseSource.FetchProjectExpenses(ctx, projectID)
	if err != nil {
		log.Printf("[document][usecase] expense fetch failed project_id=%s err=%v", projectID, err)
		return DocumentPreview{}, nil, ErrExpenseSourceUnavailable
	}

	saved, err := u.milestoneRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		log.Printf("[document][usecase] milestone load failed project_id=%s err=%v", projectID, err)
		return DocumentPreview{}, nil, err
	}

	milestones, items := u.engine.Build(expenses.Expenses, saved, docType)
	for _, edit := range edits.PriceEdits {
		milestones = pricing.SetCustomerPrice(milestones, edit.MilestoneID, edit.CustomerPrice)
	}
	if docType == entities.DocumentTypeChangeOrder && edits.LineItems != nil {
		items = applyLineItemInputs(edits.LineItems)
	}

	preview := DocumentPreview{
		ProjectID:    projectID,
		DocumentType: docType,
		Milestones:   milestones,
		LineItems:    items,
		Totals:       pricing.ComputeTotals(milestones, items, docType),
		Render:       pricing.BuildRenderPayload(milestones, items, docType),
	}
	return preview, expenses.Project, nil
}

// applyLineItemInputs rebuilds the line-item set from the session's edits.
func applyLineItemInputs(inputs []LineItemInput) []entities.ChangeOrderLineItem {
	var items []entities.ChangeOrderLineItem
	for _, in := range inputs {
		items = pricing.AddLineItem(items)
		id := items[len(items)-1].ID
		items = pricing.UpdateLineItem(items, id, "name", in.Name)
		items = pricing.UpdateLineItem(items, id, "description", in.Description)
		items = pricing.UpdateLineItem(items, id, "cost_amount", in.CostAmount)
		items = pricing.UpdateLineItem(items, id, "customer_price", in.CustomerPrice)
	}
	return items
}

// buildRenderContext enriches the caller's opaque context with the priced
// schedule. The context itself is never validated beyond being JSON.
func buildRenderContext(rawContext, project json.RawMessage, preview DocumentPreview, documentNumber string) (json.RawMessage, error) {
	payload := map[string]any{}
	if len(rawContext) > 0 {
		if err := json.Unmarshal(rawContext, &payload); err != nil {
			return nil, fmt.Errorf("invalid render context: %w", err)
		}
	}
	if _, ok := payload["project"]; !ok && len(project) > 0 {
		payload["project"] = json.RawMessage(project)
	}
	payload["document_type"] = string(preview.DocumentType)
	if n := strings.TrimSpace(documentNumber); n != "" {
		payload["document_number"] = n
	}
	payload["customer_payment_schedule"] = preview.Render.Schedule
	payload["customer_grand_total"] = preview.Render.GrandTotal
	if preview.DocumentType == entities.DocumentTypeChangeOrder {
		payload["change_order_items"] = preview.LineItems
	}
	return json.Marshal(payload)
}
