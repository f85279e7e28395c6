package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CallbackListener stands in for the provider's checkout popup: it serves
// a localhost endpoint the hosted payment page redirects back to, and
// hands the payment reference carried on that redirect to the waiting
// flow. One listener serves one payment.
type CallbackListener struct {
	srv  *http.Server
	ln   net.Listener
	refs chan string
}

// ErrClosed means the listener was shut down before a callback arrived.
var ErrClosed = errors.New("callback listener closed")

// NewCallbackListener binds addr (use "127.0.0.1:0" for an ephemeral
// port) without serving yet.
func NewCallbackListener(addr string) (*CallbackListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind callback listener: %w", err)
	}

	l := &CallbackListener{
		ln:   ln,
		refs: make(chan string, 1),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/payments/callback", l.handleCallback)

	l.srv = &http.Server{
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return l, nil
}

// URL is the redirect target to hand to the payment provider.
func (l *CallbackListener) URL() string {
	return fmt.Sprintf("http://%s/payments/callback", l.ln.Addr())
}

// Start serves in the background until Shutdown.
func (l *CallbackListener) Start() {
	go func() {
		if err := l.srv.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("callback listener error: %v", err)
		}
	}()
}

// Wait blocks until the provider redirect delivers a reference, or the
// context expires (the user abandoned the payment window).
func (l *CallbackListener) Wait(ctx context.Context) (string, error) {
	select {
	case ref, ok := <-l.refs:
		if !ok {
			return "", ErrClosed
		}
		return ref, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *CallbackListener) Shutdown(ctx context.Context) error {
	return l.srv.Shutdown(ctx)
}

func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("reference")
	if ref == "" {
		ref = r.URL.Query().Get("trxref")
	}
	if ref == "" {
		http.Error(w, "missing payment reference", http.StatusBadRequest)
		return
	}

	select {
	case l.refs <- ref:
	default:
		// A second redirect for the same payment; first one wins.
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h3>Payment received — you can close this window.</h3></body></html>")
}
