/*
Package dispatch fans a rendered brief out to its delivery channels.

Two channels exist today. EmailChannel is the channel of record: it mails
the PDF and the moodboard images through Resend to the designer, copying
the client when the brief has their address. TelegramChannel is a best
effort companion that uploads the PDF to the designer's chat, falling back
to a text summary when the upload is rejected.

Dispatcher runs every channel concurrently and collects one
models.DeliveryOutcome per channel. Overall reduces those to the submission
verdict: a failed email fails the submission, a failed chat delivery only
shows up in the outcome detail.
*/
package dispatch
