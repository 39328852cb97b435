// Package logtail reads the tail of todoterm's JSON log file and renders it
// for the log overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded no matter how large the file grows:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// A missing file is not an error; the overlay simply shows nothing.
//
// Parse decodes one zerolog line into an Entry (time, level, cmp, message,
// error and any extra fields). Format turns an Entry back into a compact
// console line:
//
//	21:01:05 ERR [controller] delete todo failed id=4 error="boom"
//
// Lines that are not JSON (a stray panic trace, for example) pass through
// unchanged. Colouring by level is left to the UI theme.
package logtail
