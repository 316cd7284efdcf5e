package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"vnechat/sms_dispatch/internal/handler"
	"vnechat/sms_dispatch/internal/pkg/httputils"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	router *mux.Router
}

func NewServer(smsHandler *handler.SMSHandler) *Server {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	smsHandler.RegisterRoutes(api)

	// Настройка Swagger
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &Server{router: router}
}

// Handler wraps the router with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	return handlers.CombinedLoggingHandler(os.Stdout, recoverJSON(s.router))
}

// recoverJSON answers a panic with the same JSON error shape and CORS
// headers as every other response.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// ErrAbortHandler должен дойти до net/http
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			httputils.ResponseError(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Запуск сервера в отдельной горутине
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
