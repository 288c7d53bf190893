package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

// New builds the Transcriber selected by cfg.Provider.
func New(cfg config.TranscriberConfig, log logger.Logger) (Transcriber, error) {
	switch cfg.Provider {
	case config.ProviderAssemblyAI:
		return newAssemblyAI(cfg.AssemblyAI, log), nil
	case config.ProviderWhisper:
		return newWhisper(cfg.Whisper, log), nil
	default:
		return nil, fmt.Errorf("unknown transcriber provider %q", cfg.Provider)
	}
}
