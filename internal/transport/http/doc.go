// Package http contains the HTTP transport layer: the multipart upload
// endpoint that runs the mirroring pipeline, plus health and metrics
// plumbing. Handlers delegate all business logic to the service layer and
// all error rendering to the shared RFC 7807 error handler.
package http
