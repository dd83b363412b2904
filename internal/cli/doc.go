// Package cli is the interactive front end of the media vault.
//
// App wires a services.VaultService to a line-oriented REPL: browse and
// search the library, step through items in the viewer, edit metadata,
// upload files and tune the background wallpaper. Command output goes to the
// writer the App was built with; the prompt and REPL notices go through
// printlnFn. The prompt is only printed when stdin is a TTY.
package cli
