/*
Package testutil provides shared helpers for tests: an in-memory database
with the full schema, a canned configuration and brief record, fake
renderer and delivery channel implementations, and small HTTP assertion
helpers.
*/
package testutil
