package http

import (
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/summary"
)

type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	DepartmentID string             `json:"departmentId"`
	CreatorID    string             `json:"creatorId"`
	Items        []OrderLineRequest `json:"items"`
}

type ApproveOrderRequest struct {
	ApproverID string  `json:"approverId"`
	Comment    *string `json:"comment"`
}

type RejectOrderRequest struct {
	ApproverID string `json:"approverId"`
	Reason     string `json:"reason"`
}

type AggregateSummariesRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SetWindowRequest struct {
	Open *bool `json:"open"`
}

type ItemResponse struct {
	ProductID   string `json:"productId"`
	ProductCode string `json:"productCode,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Quantity    int    `json:"quantity"`
}

type OrderResponse struct {
	ID           string         `json:"id"`
	DepartmentID string         `json:"departmentId"`
	CreatorID    string         `json:"creatorId"`
	ApproverID   *string        `json:"approverId,omitempty"`
	AdminComment *string        `json:"adminComment,omitempty"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Items        []ItemResponse `json:"items"`
}

type SummaryResponse struct {
	DepartmentID  string `json:"departmentId"`
	Day           string `json:"day"`
	TotalOrders   int    `json:"totalOrders"`
	ApprovedCount int    `json:"approvedCount"`
	RejectedCount int    `json:"rejectedCount"`
	PendingCount  int    `json:"pendingCount"`
}

type AggregationFailure struct {
	DepartmentID string `json:"departmentId,omitempty"`
	Day          string `json:"day"`
	Error        string `json:"error"`
}

type AggregationResponse struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Days     int                  `json:"days"`
	Rows     int                  `json:"rows"`
	Failures []AggregationFailure `json:"failures"`
}

type WindowResponse struct {
	Open bool `json:"open"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func fromOrder(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID().String(),
		DepartmentID: o.DepartmentID().String(),
		CreatorID:    o.CreatorID().String(),
		AdminComment: o.AdminComment(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Items:        make([]ItemResponse, 0, len(o.Items())),
	}
	if approver := o.ApproverID(); approver != nil {
		id := approver.String()
		resp.ApproverID = &id
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
		})
	}
	return resp
}

func fromOrderView(v commands.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:           v.ID.String(),
		DepartmentID: v.DepartmentID.String(),
		CreatorID:    v.CreatorID.String(),
		Status:       v.Status.String(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.CreatedAt,
		Items:        make([]ItemResponse, 0, len(v.Items)),
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID:   item.ProductID.String(),
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
		})
	}
	return resp
}

func fromOrderResponses(orders []queries.OrderResponse) []OrderResponse {
	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderResponse{
			ID:           o.ID.String(),
			DepartmentID: o.DepartmentID.String(),
			CreatorID:    o.CreatorID.String(),
			AdminComment: o.AdminComment,
			Status:       o.Status.String(),
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
			Items:        make([]ItemResponse, 0, len(o.Items)),
		}
		if o.ApproverID != nil {
			id := o.ApproverID.String()
			response[i].ApproverID = &id
		}
		for _, item := range o.Items {
			response[i].Items = append(response[i].Items, ItemResponse{
				ProductID:   item.ProductID.String(),
				ProductCode: item.ProductCode,
				ProductName: item.ProductName,
				Unit:        item.Unit,
				Quantity:    item.Quantity,
			})
		}
	}
	return response
}

func fromSummaries(rows []queries.SummaryResponse) []SummaryResponse {
	response := make([]SummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = SummaryResponse{
			DepartmentID:  row.DepartmentID.String(),
			Day:           row.Day.String(),
			TotalOrders:   row.TotalOrders,
			ApprovedCount: row.ApprovedCount,
			RejectedCount: row.RejectedCount,
			PendingCount:  row.PendingCount,
		}
	}
	return response
}

func fromReport(report commands.AggregationReport) AggregationResponse {
	resp := AggregationResponse{
		From:     report.From.String(),
		To:       report.To.String(),
		Days:     report.Days,
		Rows:     report.Rows,
		Failures: make([]AggregationFailure, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, fromFailure(f))
	}
	return resp
}

func fromFailure(f summary.KeyFailure) AggregationFailure {
	failure := AggregationFailure{Day: f.Key.Day.String(), Error: f.Err.Error()}
	if f.Key.DepartmentID.Validate() == nil {
		failure.DepartmentID = f.Key.DepartmentID.String()
	}
	return failure
}
