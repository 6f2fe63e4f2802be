package checkout

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

// Launcher presents the hosted widget to the user. The embedding UI supplies
// it (webview, browser hand-off); this layer only guarantees the handshake
// around it.
type Launcher func(ctx context.Context, order domain.ProcessorOrder, publicKey string, cb Callbacks) error

// WidgetProcessor wraps the third-party hosted payment widget. The widget
// ships as a runtime-loaded script; Load fetches it at most once and
// remembers a failure only for the current call, so a retry re-attempts the
// fetch.
type WidgetProcessor struct {
	scriptURL string
	publicKey string
	http      *http.Client
	launch    Launcher

	mu     sync.Mutex
	loaded bool
}

func NewWidgetProcessor(scriptURL, publicKey string, launch Launcher) *WidgetProcessor {
	return &WidgetProcessor{
		scriptURL: scriptURL,
		publicKey: publicKey,
		http:      &http.Client{Timeout: 10 * time.Second},
		launch:    launch,
	}
}

// Load fetches the widget script. Already-loaded is a no-op; a failed fetch
// returns an error and leaves the processor unloaded for the next attempt.
func (p *WidgetProcessor) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.scriptURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build script request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment script unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment script fetch failed: status %d", resp.StatusCode)
	}

	logger.Debug().Str("url", p.scriptURL).Msg("Payment widget script loaded")
	p.loaded = true
	return nil
}

// Open hands the prepared processor order to the launcher.
func (p *WidgetProcessor) Open(ctx context.Context, order domain.ProcessorOrder, cb Callbacks) error {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()
	if !loaded {
		return fmt.Errorf("payment widget not loaded")
	}
	if p.launch == nil {
		return fmt.Errorf("no widget launcher configured")
	}
	return p.launch(ctx, order, p.publicKey, cb)
}
