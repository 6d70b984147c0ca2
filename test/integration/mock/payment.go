package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// PaymentProvider fakes the payment API: scenarios register payment IDs with
// a status, everything else is a 404.
type PaymentProvider struct {
	mu       sync.Mutex
	statuses map[string]string
	failing  bool
	server   *httptest.Server
}

// NewPaymentProvider starts the fake provider.
func NewPaymentProvider() *PaymentProvider {
	p := &PaymentProvider{statuses: map[string]string{}}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	return p
}

func (p *PaymentProvider) handle(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failing {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/payments/")
	status, ok := p.statuses[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"payment not found"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "status": status})
}

// URL returns the fake provider's base URL.
func (p *PaymentProvider) URL() string {
	return p.server.URL
}

// SetStatus registers a payment ID with the given provider status.
func (p *PaymentProvider) SetStatus(paymentID, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses[paymentID] = status
}

// SetFailing makes every request return a 500 so verification fails.
func (p *PaymentProvider) SetFailing(failing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing = failing
}

// Reset clears registered payments and the failure switch.
func (p *PaymentProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = map[string]string{}
	p.failing = false
}
