package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ledgercred/credential-service/pkg/server/framework"
	"github.com/ledgercred/credential-service/pkg/server/pagination"
	svcframework "github.com/ledgercred/credential-service/pkg/service/framework"
	"github.com/ledgercred/credential-service/pkg/service/payload"
)

const UUIDParam = "uuid"

type PayloadRouter struct {
	service *payload.Service
}

func NewPayloadRouter(s svcframework.Service) (*PayloadRouter, error) {
	if s == nil {
		return nil, errors.New("service cannot be nil")
	}
	payloadService, ok := s.(*payload.Service)
	if !ok {
		return nil, fmt.Errorf("could not create payload router with service type: %s", s.Type())
	}
	return &PayloadRouter{service: payloadService}, nil
}

type GetPayloadResponse struct {
	payload.Record
	ExpiresAt string `json:"expiresAt"`
}

// GetPayload godoc
//
// @Summary     Get signing request
// @Description Get a journaled signing request by the uuid the signing service returned
// @Tags        PayloadAPI
// @Produce     json
// @Param       uuid path     string true "signing request uuid"
// @Success     200  {object} GetPayloadResponse
// @Failure     404  {object} framework.ErrorResponse "Not found"
// @Failure     500  {object} framework.ErrorResponse "Internal server error"
// @Router      /payloads/{uuid} [get]
func (pr PayloadRouter) GetPayload(c *gin.Context) error {
	id := framework.GetParam(c, UUIDParam)
	if id == nil {
		return framework.LoggingRespondErrMsg(c, "cannot get signing request without a uuid", http.StatusBadRequest)
	}

	record, err := pr.service.Get(c.Request.Context(), *id)
	if err != nil {
		if payload.IsNotFound(err) {
			return framework.LoggingRespondErrWithMsg(c, err, fmt.Sprintf("signing request not found: %s", *id), http.StatusNotFound)
		}
		return framework.LoggingRespondErrWithMsg(c, err, "could not get signing request", http.StatusInternalServerError)
	}
	return framework.Respond(c, toPayloadResponse(*record), http.StatusOK)
}

type ListPayloadsResponse struct {
	Payloads []GetPayloadResponse `json:"payloads"`

	// Pagination token to retrieve the next page of results. If the value is "", it means no further results.
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// ListPayloads godoc
//
// @Summary     List signing requests
// @Description List every journaled signing request, newest first
// @Tags        PayloadAPI
// @Produce     json
// @Param       pageSize  query    number false "Hint to the server of the maximum elements to return"
// @Param       pageToken query    string false "When specified will retrieve the next page of results"
// @Success     200       {object} ListPayloadsResponse
// @Failure     400       {object} framework.ErrorResponse "Bad request"
// @Failure     500       {object} framework.ErrorResponse "Internal server error"
// @Router      /payloads [get]
func (pr PayloadRouter) ListPayloads(c *gin.Context) error {
	var pageRequest pagination.PageRequest
	if pagination.ParsePaginationParams(c, &pageRequest) {
		return nil
	}

	records, nextPageToken, err := pr.service.List(c.Request.Context(), pageRequest.ToServicePage())
	if err != nil {
		return framework.LoggingRespondErrWithMsg(c, err, "could not list signing requests", http.StatusInternalServerError)
	}
	resp := ListPayloadsResponse{Payloads: make([]GetPayloadResponse, 0, len(records))}
	for _, record := range records {
		resp.Payloads = append(resp.Payloads, toPayloadResponse(record))
	}
	if pagination.MaybeSetNextPageToken(c, nextPageToken, &resp.NextPageToken) {
		return nil
	}
	return framework.Respond(c, resp, http.StatusOK)
}

func toPayloadResponse(record payload.Record) GetPayloadResponse {
	return GetPayloadResponse{
		Record:    record,
		ExpiresAt: record.ExpiresAt().Format(time.RFC3339),
	}
}
