// Package exiftool drives a long-lived exiftool process in stay-open mode
// and decodes its JSON metadata records.
//
// One session serves a whole batch: [Open] starts the process, each
// [Session.Execute] writes a request terminated by -execute and reads
// stdout up to the {ready} sentinel, and [Session.Close] sends the
// -stay_open False directive. [With] scopes a session to a function so the
// directive is sent on every exit path.
package exiftool
