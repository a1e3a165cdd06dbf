package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks writes pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, sources []string) {
	if len(sources) == 0 {
		h.logger.Debug("loading built-in universe")
		return
	}
	h.logger.Debug("loading universe", "patterns", sources)
}

func (h *logHooks) OnLoadComplete(_ context.Context, _ []string, typeCount int, d time.Duration, err error) {
	h.complete("load", err, "types", typeCount, "duration", d)
}

func (h *logHooks) OnBuildStart(_ context.Context, namespace string) {
	h.logger.Debug("building document", "namespace", namespace)
}

func (h *logHooks) OnBuildComplete(_ context.Context, namespace string, typeCount int, d time.Duration, err error) {
	h.complete("build", err, "namespace", namespace, "types", typeCount, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.complete("render", err, "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) complete(stage string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Debug(stage+" failed", append(keyvals, "error", err)...)
		return
	}
	h.logger.Debug(stage+" complete", keyvals...)
}
