// Package api hosts the HTTP server, middleware, and JSON handlers. Routes:
//   - POST /api/summarize runs the summarize pipeline for {"url": "..."}.
//   - GET /api/health reports settings and store connectivity, always with 200.
//   - GET /api/test-mongo probes MongoDB with a throwaway client.
//   - GET /healthz for liveness probes and GET /metrics for Prometheus scraping.
package api
