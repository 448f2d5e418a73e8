// Package http implements the REST transport of the report service.
//
// It wires the /api routes, decodes requests and maps service errors to JSON
// replies. Authentication, subscription gates, per-IP rate limits, request
// tracing, access logging, security headers and response compression are
// handled here before requests reach the service layer.
package http
