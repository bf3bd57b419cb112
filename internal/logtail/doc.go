// Package logtail reads the end of the foodbites log file and turns its
// JSON lines into something readable in the Activity view.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays bounded by the window and not by the file size. Lines come
// back oldest first. A missing file is not an error; it simply has no lines
// yet.
//
//	lines, err := logtail.Read(cfg.LogPath(), 400)
//
// # Formatting
//
// The client logs with zerolog, one JSON object per line. Parse decodes a
// line with gjson into an Entry (time, level, message, error and the
// remaining fields sorted by key). Format maps a batch of lines through
// Parse and leaves anything that is not a JSON object untouched:
//
//	14:32:15 INFO api request method=GET path=/api/foods status=200
//
// The app field is dropped because every line carries it.
package logtail
