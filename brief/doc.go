/*
Package brief coordinates the life of a project brief from the first field
edit to delivery.

Each client gets a session holding the live record and its position in the
four step sequence. Edits merge through partial patches and schedule a
debounced draft save, so an abandoned browser tab can pick up where it
left off. Submission is a guarded pipeline: confirmation and configuration
checks first, then the PDF render, then the concurrent fan-out to the
delivery channels. Email is the channel of record; a chat failure is noted
but never blocks. Every attempt lands in the submission log either way.

A failed submission returns the session to idle with the error message
attached, keeping the draft intact so the client can try again.
*/
package brief
