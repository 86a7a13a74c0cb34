package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "quicksplit.v1.LedgerService"

// Procedure paths of the LedgerService.
const (
	LedgerServiceStartSessionProcedure    = "/" + LedgerServiceName + "/StartSession"
	LedgerServiceGetScreenProcedure       = "/" + LedgerServiceName + "/GetScreen"
	LedgerServiceSetFieldsProcedure       = "/" + LedgerServiceName + "/SetFields"
	LedgerServiceSubmitItemProcedure      = "/" + LedgerServiceName + "/SubmitItem"
	LedgerServiceIncrementPeopleProcedure = "/" + LedgerServiceName + "/IncrementPeople"
	LedgerServiceDecrementPeopleProcedure = "/" + LedgerServiceName + "/DecrementPeople"
	LedgerServiceSetPeopleProcedure       = "/" + LedgerServiceName + "/SetPeople"
	LedgerServiceEndSessionProcedure      = "/" + LedgerServiceName + "/EndSession"
)

// LedgerServiceHandler is implemented by the server.
type LedgerServiceHandler interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetScreen(context.Context, *connect.Request[GetScreenRequest]) (*connect.Response[ScreenResponse], error)
	SetFields(context.Context, *connect.Request[SetFieldsRequest]) (*connect.Response[ScreenResponse], error)
	SubmitItem(context.Context, *connect.Request[SubmitItemRequest]) (*connect.Response[SubmitItemResponse], error)
	IncrementPeople(context.Context, *connect.Request[IncrementPeopleRequest]) (*connect.Response[ScreenResponse], error)
	DecrementPeople(context.Context, *connect.Request[DecrementPeopleRequest]) (*connect.Response[ScreenResponse], error)
	SetPeople(context.Context, *connect.Request[SetPeopleRequest]) (*connect.Response[ScreenResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceStartSessionProcedure, connect.NewUnaryHandler(LedgerServiceStartSessionProcedure, svc.StartSession, opts...))
	mux.Handle(LedgerServiceGetScreenProcedure, connect.NewUnaryHandler(LedgerServiceGetScreenProcedure, svc.GetScreen, opts...))
	mux.Handle(LedgerServiceSetFieldsProcedure, connect.NewUnaryHandler(LedgerServiceSetFieldsProcedure, svc.SetFields, opts...))
	mux.Handle(LedgerServiceSubmitItemProcedure, connect.NewUnaryHandler(LedgerServiceSubmitItemProcedure, svc.SubmitItem, opts...))
	mux.Handle(LedgerServiceIncrementPeopleProcedure, connect.NewUnaryHandler(LedgerServiceIncrementPeopleProcedure, svc.IncrementPeople, opts...))
	mux.Handle(LedgerServiceDecrementPeopleProcedure, connect.NewUnaryHandler(LedgerServiceDecrementPeopleProcedure, svc.DecrementPeople, opts...))
	mux.Handle(LedgerServiceSetPeopleProcedure, connect.NewUnaryHandler(LedgerServiceSetPeopleProcedure, svc.SetPeople, opts...))
	mux.Handle(LedgerServiceEndSessionProcedure, connect.NewUnaryHandler(LedgerServiceEndSessionProcedure, svc.EndSession, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient calls a LedgerService.
type LedgerServiceClient struct {
	startSession    *connect.Client[StartSessionRequest, StartSessionResponse]
	getScreen       *connect.Client[GetScreenRequest, ScreenResponse]
	setFields       *connect.Client[SetFieldsRequest, ScreenResponse]
	submitItem      *connect.Client[SubmitItemRequest, SubmitItemResponse]
	incrementPeople *connect.Client[IncrementPeopleRequest, ScreenResponse]
	decrementPeople *connect.Client[DecrementPeopleRequest, ScreenResponse]
	setPeople       *connect.Client[SetPeopleRequest, ScreenResponse]
	endSession      *connect.Client[EndSessionRequest, EndSessionResponse]
}

// NewLedgerServiceClient creates a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &LedgerServiceClient{
		startSession:    connect.NewClient[StartSessionRequest, StartSessionResponse](httpClient, baseURL+LedgerServiceStartSessionProcedure, opts...),
		getScreen:       connect.NewClient[GetScreenRequest, ScreenResponse](httpClient, baseURL+LedgerServiceGetScreenProcedure, opts...),
		setFields:       connect.NewClient[SetFieldsRequest, ScreenResponse](httpClient, baseURL+LedgerServiceSetFieldsProcedure, opts...),
		submitItem:      connect.NewClient[SubmitItemRequest, SubmitItemResponse](httpClient, baseURL+LedgerServiceSubmitItemProcedure, opts...),
		incrementPeople: connect.NewClient[IncrementPeopleRequest, ScreenResponse](httpClient, baseURL+LedgerServiceIncrementPeopleProcedure, opts...),
		decrementPeople: connect.NewClient[DecrementPeopleRequest, ScreenResponse](httpClient, baseURL+LedgerServiceDecrementPeopleProcedure, opts...),
		setPeople:       connect.NewClient[SetPeopleRequest, ScreenResponse](httpClient, baseURL+LedgerServiceSetPeopleProcedure, opts...),
		endSession:      connect.NewClient[EndSessionRequest, EndSessionResponse](httpClient, baseURL+LedgerServiceEndSessionProcedure, opts...),
	}
}

func (c *LedgerServiceClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetScreen(ctx context.Context, req *connect.Request[GetScreenRequest]) (*connect.Response[ScreenResponse], error) {
	return c.getScreen.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetFields(ctx context.Context, req *connect.Request[SetFieldsRequest]) (*connect.Response[ScreenResponse], error) {
	return c.setFields.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SubmitItem(ctx context.Context, req *connect.Request[SubmitItemRequest]) (*connect.Response[SubmitItemResponse], error) {
	return c.submitItem.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) IncrementPeople(ctx context.Context, req *connect.Request[IncrementPeopleRequest]) (*connect.Response[ScreenResponse], error) {
	return c.incrementPeople.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DecrementPeople(ctx context.Context, req *connect.Request[DecrementPeopleRequest]) (*connect.Response[ScreenResponse], error) {
	return c.decrementPeople.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetPeople(ctx context.Context, req *connect.Request[SetPeopleRequest]) (*connect.Response[ScreenResponse], error) {
	return c.setPeople.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) EndSession(ctx context.Context, req *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}
