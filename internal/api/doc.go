// Package api serves the TiffinCRM JSON API over gin.
//
// Every response is an envelope: {"success": true, "data": ..., "message": ...}
// on success and {"success": false, "error": "..."} on failure. Handlers bind
// request payloads into typed commands from pkg/types before calling the
// services, and map the error kinds from pkg/types to HTTP status codes.
package api
