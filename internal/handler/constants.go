package handler

const (
	APIPrefix = "/api/v1"

	MsgNotAuthenticated   = "not authenticated"
	MsgCustomerNotFound   = "customer not found"
	MsgInvoiceNotFound    = "invoice not found"
	MsgInvalidRequestBody = "invalid request body"
	MsgLoggedOut          = "logged out"
)
