// Package errs defines the error types used across the dyntools core.
//
// Only ToolNotFoundError crosses the dispatcher as a hard fault: it means
// no handler could run at all. Handler failures are represented as data
// (an IsError tool result), and notification delivery failures are logged
// and dropped. See the session package for where each class is produced.
package errs
