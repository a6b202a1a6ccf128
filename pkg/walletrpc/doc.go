// Package walletrpc is the wire contract of the group wallet: procedure
// names, request and response messages, and Connect handlers and clients
// for GroupService, TransactionService and AuthService.
//
// Messages are plain Go structs carried as JSON (see JSONCodec). Handlers
// and clients built here register the codec themselves.
package walletrpc
