/*
Package render turns a completed brief record into a PDF document.

Two backends implement the Renderer interface. FPDFRenderer draws the
document directly and needs nothing beyond the process itself, which makes
it the default. ChromeRenderer prints an HTML rendition through a headless
Chrome instance for higher visual fidelity, at the cost of requiring a
browser on the host. New picks a backend from the configuration and wraps
it so every produced document passes a structural check (parseable PDF, at
least one page) before it reaches a delivery channel.

Empty fields never fail a render. A brief with nothing but defaults still
produces a valid document with dashes in place of missing values.
*/
package render
