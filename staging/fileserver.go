// Copyright © 2024 The n2h-helper authors

package staging

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/openmigrate/n2h-helper/pkg/constants"
	"github.com/openmigrate/n2h-helper/pkg/utils"
)

// FileServer exposes a single staged image over plain HTTP so the target
// cluster's importer can pull it. Only one image is exposed at a time: a
// second Serve call stops the previous server first.
type FileServer struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	bindIP   string
	port     int
}

var defaultServer = &FileServer{}

// DefaultFileServer returns the process-wide exposer.
func DefaultFileServer() *FileServer {
	return defaultServer
}

// Serve exposes path at http://<bindIP>:<port>/<base name> and returns
// that URL. bindIP may be empty, in which case the local address is
// resolved; a non-positive port falls back to the default. The server
// runs until Stop or the next Serve call.
func (f *FileServer) Serve(path, bindIP string, port int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.server != nil {
		f.stopLocked()
	}

	if bindIP == "" {
		bindIP = utils.ResolveLocalIP()
	}
	if port <= 0 {
		port = constants.DefaultHTTPServerPort
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return "", errors.Wrap(err, "failed to listen for file server")
	}

	name := filepath.Base(path)
	mux := http.NewServeMux()
	mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	})

	f.server = &http.Server{Handler: mux}
	f.listener = listener
	f.bindIP = bindIP
	f.port = port

	go func(srv *http.Server, l net.Listener) {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			log.Printf("File server stopped: %s", err)
		}
	}(f.server, f.listener)

	url := fmt.Sprintf("http://%s:%d/%s", bindIP, port, name)
	log.Printf("Serving %s at %s", path, url)
	return url, nil
}

// Stop shuts the server down. Safe to call when nothing is being served.
func (f *FileServer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
}

func (f *FileServer) stopLocked() {
	if f.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.server.Shutdown(ctx); err != nil {
		log.Printf("File server shutdown: %s", err)
	}
	f.server = nil
	f.listener = nil
}
