/*
Package db handles SQLite schema creation and the submission audit log.

# Schema

Two tables:

  - draft: one row per draft storage key (JSON record + saved step)
  - submission: one row per submission attempt with per-channel outcomes

CreateSchema is idempotent and runs at startup:

	if err := db.CreateSchema(conn); err != nil { ... }

# Submission Log

Every dispatch cycle is recorded whether it succeeded or failed, so partial
failures (email ok, chat down) stay diagnosable after the fact:

	db.LogSubmission(conn, id, briefID, project, client, emailOK, chatOK, detail, size)

The log is operator-facing only; nothing in the client API reads it back.
*/
package db
