/*
Package models defines the data types shared across the brief intake service.

# BriefRecord

BriefRecord is the single mutable aggregate the whole pipeline operates on:
identity fields (client status, names, contact), project fields, style fields
(logo archetype, moodboard images), scope fields (application catalog
selections, paper sizes), and schedule/commercial fields (dates, budget
bracket, notes).

The record is created with defaults when a form session starts, mutated via
BriefPatch merge updates, and discarded only on confirmed successful
submission or an explicit reset.

# Moodboard

Moodboard images arrive as base64 data URIs and are decoded once at the API
boundary. In memory and for delivery they are raw bytes; JSON marshalling
(used by the draft store) re-encodes them to data URIs, so drafts round-trip
losslessly.

# Validation

Validation is soft throughout: MissingRequired reports empty required fields
(clientName, email) but nothing blocks step navigation. Hard limits exist
only for the moodboard (max 5 images, per-image byte ceiling).
*/
package models
