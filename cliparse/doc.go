/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabasePath: SQLite database file (default: brief.db)
  - DraftKeySalt: Secret for draft storage key HMAC (required)
  - PDFBackend: Document renderer backend, "fpdf" or "chrome" (default: fpdf)
  - ResendAPIKey / DesignerEmail / EmailFrom: email channel settings
  - TelegramBotToken / TelegramChatID / TelegramAPIBase: chat channel settings
  - MoodboardMaxBytes: per-image byte ceiling (default: 5 MB)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_PATH     → -d
	PDF_BACKEND       → -backend
	DRAFT_KEY_SALT    → -draft-salt
	RESEND_API_KEY    → -resend-key
	TELEGRAM_BOT_TOKEN → -tg-token
	BRIEF_DESIGNER_EMAIL, BRIEF_EMAIL_FROM, TELEGRAM_CHAT_ID,
	TELEGRAM_API_BASE, MOODBOARD_MAX_BYTES (env only)

CLI flags take precedence over environment variables.

# Validation

Only DRAFT_KEY_SALT is hard-required at startup. Delivery credentials are
deliberately soft: a missing RESEND_API_KEY or BRIEF_DESIGNER_EMAIL is a
configuration error reported when a client actually submits, so the rest of
the form keeps working. A missing Telegram credential silently disables that
channel (it is best-effort by design).

EmailConfigured and ChatConfigured are the single source of truth for those
two checks.
*/
package cliparse
