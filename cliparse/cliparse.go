package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Renderer backend names
const (
	BackendFPDF   = "fpdf"
	BackendChrome = "chrome"
)

type Config struct {
	Port         int
	DatabasePath string
	DraftKeySalt string

	// Document renderer
	PDFBackend string

	// Email channel (checked at submission time, not at startup)
	ResendAPIKey  string
	EmailFrom     string
	DesignerEmail string

	// Chat channel (optional; absence degrades the channel to a no-op)
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string

	// Moodboard per-image byte ceiling
	MoodboardMaxBytes int64
}

// ParseFlags builds the configuration from CLI flags with env fallbacks.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("brief-server", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabasePath, "d", "", "SQLite database path")
	fs.StringVar(&cfg.PDFBackend, "backend", "", "PDF renderer backend (fpdf or chrome)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.DraftKeySalt, "draft-salt", "", "Draft key salt (prefer env)")
	fs.StringVar(&cfg.ResendAPIKey, "resend-key", "", "Resend API key (prefer env)")
	fs.StringVar(&cfg.TelegramBotToken, "tg-token", "", "Telegram bot token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = os.Getenv("DATABASE_PATH")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "brief.db"
	}

	if cfg.PDFBackend == "" {
		cfg.PDFBackend = os.Getenv("PDF_BACKEND")
		if cfg.PDFBackend == "" {
			cfg.PDFBackend = BackendFPDF
		}
	}
	if cfg.PDFBackend != BackendFPDF && cfg.PDFBackend != BackendChrome {
		return Config{}, errors.New("PDF_BACKEND must be 'fpdf' or 'chrome'")
	}

	// Secrets - draft salt MUST be provided
	if cfg.DraftKeySalt == "" {
		cfg.DraftKeySalt = os.Getenv("DRAFT_KEY_SALT")
	}
	if cfg.DraftKeySalt == "" {
		return Config{}, errors.New("DRAFT_KEY_SALT required")
	}

	// Channel credentials. These are soft at parse time: the email channel is
	// mandatory for a submission to succeed, but the operator error surfaces
	// at submit time so the rest of the form keeps working without it.
	if cfg.ResendAPIKey == "" {
		cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	}
	cfg.DesignerEmail = os.Getenv("BRIEF_DESIGNER_EMAIL")
	cfg.EmailFrom = os.Getenv("BRIEF_EMAIL_FROM")
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "Portfolio Briefs <onboarding@resend.dev>"
	}

	if cfg.TelegramBotToken == "" {
		cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.TelegramAPIBase = os.Getenv("TELEGRAM_API_BASE")
	if cfg.TelegramAPIBase == "" {
		cfg.TelegramAPIBase = "https://api.telegram.org"
	}

	if maxStr := os.Getenv("MOODBOARD_MAX_BYTES"); maxStr != "" {
		max, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil || max <= 0 {
			return Config{}, errors.New("invalid MOODBOARD_MAX_BYTES env variable")
		}
		cfg.MoodboardMaxBytes = max
	} else {
		cfg.MoodboardMaxBytes = 5 << 20 // 5 MB
	}

	return cfg, nil
}

// EmailConfigured reports whether the email channel can function at all.
func (c Config) EmailConfigured() bool {
	return c.ResendAPIKey != "" && c.DesignerEmail != ""
}

// ChatConfigured reports whether the chat channel should be attempted.
func (c Config) ChatConfigured() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}
