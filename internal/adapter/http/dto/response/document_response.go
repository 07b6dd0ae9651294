package response

import (
	"time"

	"tovyalla_billing/internal/domain/entities"
	"tovyalla_billing/internal/usecase"
)

type MilestoneResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	CostAmount         float64 `json:"cost_amount"`
	CustomerPrice      float64 `json:"customer_price"`
	MilestoneType      string  `json:"milestone_type"`
	SubcontractorFeeID string  `json:"subcontractor_fee_id,omitempty"`
	SortOrder          int     `json:"sort_order"`
}

type LineItemResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CostAmount    float64 `json:"cost_amount"`
	CustomerPrice float64 `json:"customer_price"`
}

type TotalsResponse struct {
	TotalCost          float64 `json:"total_cost"`
	TotalCustomerPrice float64 `json:"total_customer_price"`
	Profit             float64 `json:"profit"`
	Margin             float64 `json:"margin"`
}

type ScheduleLineResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type DocumentPreviewResponse struct {
	ProjectID    string                 `json:"project_id"`
	DocumentType string                 `json:"document_type"`
	Milestones   []MilestoneResponse    `json:"milestones"`
	LineItems    []LineItemResponse     `json:"line_items,omitempty"`
	Totals       TotalsResponse         `json:"totals"`
	Schedule     []ScheduleLineResponse `json:"schedule"`
	GrandTotal   float64                `json:"grand_total"`
}

func FromDocumentPreview(p usecase.DocumentPreview) DocumentPreviewResponse {
	milestones := make([]MilestoneResponse, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, MilestoneResponse{
			ID:                 m.ID,
			Name:               m.Name,
			CostAmount:         m.CostAmount,
			CustomerPrice:      m.CustomerPrice,
			MilestoneType:      string(m.MilestoneType),
			SubcontractorFeeID: m.SubcontractorFeeID,
			SortOrder:          m.SortOrder,
		})
	}

	var items []LineItemResponse
	for _, it := range p.LineItems {
		items = append(items, LineItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			Description:   it.Description,
			CostAmount:    it.CostAmount,
			CustomerPrice: it.CustomerPrice,
		})
	}

	schedule := make([]ScheduleLineResponse, 0, len(p.Render.Schedule))
	for _, line := range p.Render.Schedule {
		schedule = append(schedule, ScheduleLineResponse{
			Description: line.Description,
			Amount:      line.Amount,
		})
	}

	return DocumentPreviewResponse{
		ProjectID:    p.ProjectID,
		DocumentType: string(p.DocumentType),
		Milestones:   milestones,
		LineItems:    items,
		Totals: TotalsResponse{
			TotalCost:          p.Totals.TotalCost,
			TotalCustomerPrice: p.Totals.TotalCustomerPrice,
			Profit:             p.Totals.Profit,
			Margin:             p.Totals.Margin(),
		},
		Schedule:   schedule,
		GrandTotal: p.Render.GrandTotal,
	}
}

type GeneratedDocumentResponse struct {
	DocumentID     string    `json:"document_id"`
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	FileURL        string    `json:"file_url"`
	GrandTotal     float64   `json:"grand_total"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromGeneratedDocument(d entities.GeneratedDocument) GeneratedDocumentResponse {
	return GeneratedDocumentResponse{
		DocumentID:     d.ID,
		ID:             d.ID,
		ProjectID:      d.ProjectID,
		DocumentType:   string(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		FileURL:        d.FileURL,
		GrandTotal:     d.GrandTotal,
		CreatedAt:      d.CreatedAt,
	}
}
