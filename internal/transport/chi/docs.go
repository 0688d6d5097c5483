package chi

import "net/http"

const docsHTML = `<!DOCTYPE html>
<html>
<head><title>Hotel Deep Search API</title></head>
<body>
    <h1>Hotel Deep Search API</h1>
    <h2>Endpoints</h2>
    <ul>
        <li><strong>GET /</strong> - Service info</li>
        <li><strong>GET /health</strong> - System health check</li>
        <li><strong>POST /deep-search</strong> - Deep search across all hotel data layers</li>
        <li><strong>GET /search-layer/{layer}?query=...</strong> - Single layer search</li>
        <li><strong>GET /search-suggestions?query=...</strong> - Related query suggestions</li>
        <li><strong>GET /analytics</strong> - Search analytics</li>
        <li><strong>GET /metrics</strong> - Prometheus metrics</li>
    </ul>

    <h2>Deep Search Example</h2>
    <pre>
curl -X POST http://localhost:8000/deep-search \
  -H "Content-Type: application/json" \
  -d '{"query": "booking room 101 tomorrow"}'
    </pre>

    <h2>Available Layers</h2>
    <ul>
        <li>booking</li>
        <li>financial</li>
        <li>guest</li>
        <li>staff</li>
        <li>policies</li>
    </ul>
</body>
</html>
`

// Docs handles GET /docs. Serves a static HTML documentation page.
func (s *Server) Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsHTML))
}
