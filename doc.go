/*
Package main provides the entry point for the brief API server.

brief-server is the backend for a graphic designer's portfolio site. It
drives the multi-step project brief form: clients fill in four steps
(info, style, details, review), drafts autosave between visits, and a
confirmed submission renders the brief to PDF and delivers it to the
designer by email and Telegram.

# Starting the Server

The server reads environment variables, an optional .env file, or CLI
flags:

	DRAFT_KEY_SALT=... RESEND_API_KEY=... go run .

Or with flags:

	go run . -p 3319 -d brief.db -backend fpdf

# Configuration

Required settings:

  - DRAFT_KEY_SALT (-draft-salt): Secret for draft key HMAC

Delivery settings (email is required for submissions to succeed):

  - RESEND_API_KEY (-resend-key): Resend API key
  - BRIEF_DESIGNER_EMAIL: Address that receives every brief
  - BRIEF_EMAIL_FROM: Sender identity (default: Resend onboarding domain)
  - TELEGRAM_BOT_TOKEN (-tg-token), TELEGRAM_CHAT_ID: Optional chat copy

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_PATH (-d): SQLite file (default: brief.db)
  - PDF_BACKEND (-backend): "fpdf" or "chrome" (default: fpdf)
  - MOODBOARD_MAX_BYTES: Per-image ceiling (default: 5 MB)
*/
package main
