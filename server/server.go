// Package server implements an HTTP service that calculates Tiger hashes of request bodies.
package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"hash"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger"
	"github.com/direct-connect/go-tiger/internal/safe"
	"github.com/direct-connect/go-tiger/version"
)

const (
	PathTigerV0  = "/api/v0/tiger"
	PathTiger2V0 = "/api/v0/tiger2"
	PathTTHV0    = "/api/v0/tth"
	PathStatsV0  = "/api/v0/stats.json"
	PathMetrics  = "/metrics"
)

const (
	AlgoTiger  = "tiger"
	AlgoTiger2 = "tiger2"
	AlgoTTH    = "tth"
)

// DefaultMaxBody is the default limit of the request body size.
const DefaultMaxBody = 64 << 20

// Config of the hashing service.
type Config struct {
	// MaxBody is the maximal size of the request body. Defaults to DefaultMaxBody.
	MaxBody int64
}

// Result is a response to a hash request.
type Result struct {
	Algo string `json:"algo"`
	Size int64  `json:"size"`
	Hash string `json:"hash"`
}

// Stats are the counters of the service.
type Stats struct {
	Requests uint64 `json:"requests"`
	Bytes    uint64 `json:"bytes"`
	Errors   uint64 `json:"errors"`
}

// Server hashes request bodies. It implements http.Handler.
type Server struct {
	log  *zap.Logger
	conf Config
	mux  *http.ServeMux

	closed safe.Bool

	requests safe.Counter
	bytes    safe.Counter
	errors   safe.Counter
}

// New creates a hashing service. Logger may be nil.
func New(conf Config, log *zap.Logger) *Server {
	if conf.MaxBody <= 0 {
		conf.MaxBody = DefaultMaxBody
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{log: log, conf: conf, mux: http.NewServeMux()}
	s.mux.HandleFunc(PathTigerV0, s.hashHandler(AlgoTiger, hashDigest(tiger.New)))
	s.mux.HandleFunc(PathTiger2V0, s.hashHandler(AlgoTiger2, hashDigest(tiger.New2)))
	s.mux.HandleFunc(PathTTHV0, s.hashHandler(AlgoTTH, hashTree))
	s.mux.HandleFunc(PathStatsV0, s.serveStats)
	s.mux.Handle(PathMetrics, promhttp.Handler())
	return s
}

// Stats returns the current counters.
func (s *Server) Stats() Stats {
	return Stats{
		Requests: s.requests.Get(),
		Bytes:    s.bytes.Get(),
		Errors:   s.errors.Get(),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("http request",
		zap.String("remote", r.RemoteAddr),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.String("agent", r.Header.Get("User-Agent")),
	)
	w.Header().Set("Server", version.Name+"/"+version.Vers)
	if s.closed.Get() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	s.mux.ServeHTTP(w, r)
}

type hashFunc func(r io.Reader) (string, int64, error)

func hashDigest(newHash func() hash.Hash) hashFunc {
	return func(r io.Reader) (string, int64, error) {
		h := newHash()
		n, err := io.Copy(h, r)
		if err != nil {
			return "", n, err
		}
		return hex.EncodeToString(h.Sum(nil)), n, nil
	}
}

func hashTree(r io.Reader) (string, int64, error) {
	var t tiger.TreeHasher
	n, err := io.Copy(&t, r)
	if err != nil {
		return "", n, err
	}
	return t.Sum().Base32(), n, nil
}

func (s *Server) hashHandler(algo string, fn hashFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.requests.Inc()
		cntRequests.WithLabelValues(algo).Inc()

		start := time.Now()
		done := measure(durHash.WithLabelValues(algo))
		var body io.Reader = r.Body
		if s.conf.MaxBody < math.MaxInt64 {
			// read one more byte to detect oversized bodies
			body = io.LimitReader(r.Body, s.conf.MaxBody+1)
		}
		sum, n, err := fn(body)
		done()
		if err == nil && n > s.conf.MaxBody {
			s.fail(w, r, http.StatusRequestEntityTooLarge, "request body is too large: limit "+strconv.FormatInt(s.conf.MaxBody, 10))
			return
		} else if err != nil {
			s.fail(w, r, http.StatusBadRequest, err.Error())
			return
		}
		s.bytes.Add(uint64(n))
		cntBytes.WithLabelValues(algo).Add(float64(n))

		s.log.Info("hashed",
			zap.String("remote", r.RemoteAddr),
			zap.String("algo", algo),
			zap.Int64("size", n),
			zap.Duration("took", time.Since(start)),
		)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Result{Algo: algo, Size: n, Hash: sum})
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, msg string) {
	s.errors.Inc()
	cntErrors.Inc()
	s.log.Warn("hash request failed",
		zap.String("remote", r.RemoteAddr),
		zap.Int("code", code),
		zap.String("err", msg),
	)
	http.Error(w, msg, code)
}

func (s *Server) serveStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Stats())
}

// ListenAndServe serves the hashing API on the address until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("listening", zap.String("addr", addr))
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.closed.Set(true)
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(sctx)
	if e := <-errc; e != http.ErrServerClosed && err == nil {
		err = e
	}
	s.log.Info("stopped", zap.String("addr", addr))
	return err
}
