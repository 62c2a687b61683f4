package integration

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/blob"
	"github.com/vidzel/vidzel/pkg/config"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/endpoints"
	"github.com/vidzel/vidzel/pkg/token"
)

const binaryPort = "18080"

// ServerInstance is a running Vidzel server, in-process or as a child process
type ServerInstance struct {
	URL     string
	httpSrv *httptest.Server
	process *exec.Cmd
	cancel  context.CancelFunc
	server  *server.Server
}

func testConfig() *config.VidzelConfig {
	cfg := config.Default()
	// scenarios sign up many accounts from one address
	cfg.AuthRateLimit = 1000
	cfg.AuthRateBurst = 1000
	return cfg
}

// startInlineServer runs the server in-process on an httptest listener
func startInlineServer(db *gorm.DB, tokenKey []byte) (*ServerInstance, error) {
	cfg := testConfig()

	signer, err := token.NewSigner(tokenKey, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	blobs, err := blob.NewBadgerStore(blob.BadgerOptions{PublicURL: cfg.PublicURL})
	if err != nil {
		return nil, err
	}

	s := server.NewServer(server.Options{
		Config:  cfg,
		Stores:  server.NewGormStores(db),
		Blob:    blobs,
		Signer:  signer,
		Version: "integration",
	})
	endpoints.RegisterAll(s)

	httpSrv := httptest.NewServer(s.Handler())
	return &ServerInstance{URL: httpSrv.URL, httpSrv: httpSrv, server: s}, nil
}

// startBinaryServer starts `vidzelctl server`
func startBinaryServer(binaryPath, dbURL string, tokenKey []byte) (*ServerInstance, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// migrations already ran during setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", binaryPort)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"VIDZEL_TOKEN_KEY="+base64.StdEncoding.EncodeToString(tokenKey),
		"VIDZEL_AUTH_RATE_LIMIT=1000",
		"VIDZEL_AUTH_RATE_BURST=1000",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	instance := &ServerInstance{
		URL:     "http://127.0.0.1:" + binaryPort,
		process: cmd,
		cancel:  cancel,
	}
	if err := waitForServer(instance.URL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

// Stop shuts the server down
func (si *ServerInstance) Stop() {
	if si.httpSrv != nil {
		si.httpSrv.Close()
	}
	if si.server != nil {
		_ = si.server.Close()
	}
	if si.cancel != nil {
		si.cancel()
	}
	if si.process != nil && si.process.Process != nil {
		_ = si.process.Process.Kill()
		_ = si.process.Wait()
	}
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
