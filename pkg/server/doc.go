// Package server provides the HTTP server for the Vidzel API.
//
// The Server struct carries everything a handler needs: the stores, the
// blob store for uploads, the session token signer, the zap logger and the
// Prometheus metrics. Routing uses gorilla/mux. Every request gets a
// request id, panic recovery and CORS handling; authenticated subrouters add
// AuthMiddleware and the signup/login routes add AuthLimiter.
//
// # Server Setup
//
//	srv := server.NewServer(server.Options{
//	    Config: cfg,
//	    Stores: server.NewGormStores(db),
//	    Blob:   blobStore,
//	    Signer: signer,
//	    Logger: logger,
//	    Host:   "0.0.0.0",
//	    Port:   "8000",
//	})
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
//	    log.Fatal(err)
//	}
package server
