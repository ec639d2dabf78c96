// Package logging provides opt-in file-based logging with rotation for
// pubtopics. When the --debug flag is set, comprehensive logs are written
// to ~/.pubtopics/logs/ for debugging long corpus runs.
//
// Progress heartbeats are rate-limited through an explicit Heartbeat
// value so that per-line status logging never floods the log during a
// multi-million-line pass.
package logging
