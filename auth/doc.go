/*
Package auth provides ID and key generation for the brief intake service.

# ID Generation

GenerateID creates random hex identifiers used for brief sessions:

	briefID, err := auth.GenerateID(16) // 32 hex chars

# Draft Keys

Drafts are stored under an HMAC of a client-supplied key, never under the raw
value, so clients cannot address each other's rows:

	storageKey := auth.DraftKey(clientKey, cfg.DraftKeySalt)

GenerateClientKey mints the random client-side key on first contact; the
browser persists it and replays it so its draft survives reloads.
*/
package auth
