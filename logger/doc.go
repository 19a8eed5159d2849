/*
Package logger provides logging functionality to a safespace app by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[StdLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*StdLogger.Warn], [*StdLogger.Error], and [*StdLogger.Fatal] produce messages.

Log messages emitted by [StdLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [INFO] safespace/http/intercept/interceptor.go:143 'presenting failure' log_context: {"data":{"code":"oops","exc_type":"problem"}}

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [StdLogger] in a [SentryLogger],
which additionally reports the [LogContext] error of WARN, ERROR and FATAL logs to Sentry.
*/
package logger
