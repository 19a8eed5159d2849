/*
Package ranger initializes and manages a safespace app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
A [Ranger] embeds the [resp.Responder] and [router.Router] it builds,
so routes are registered directly on it.
Handlers returning errors are adapted with [*Ranger.Intercept]:
the failures the configured exception kinds match are presented to the end user,
everything else becomes a plain 500.

[*Ranger.Guide] begins a safespace app's web server,
by default listening on [config.DefaultAddr].
Stop that web server with [*Ranger.Shutdown],
by cancelling the context set with [WithContext],
or by sending os.Interrupt or syscall.SIGTERM.

# Configuration

A developer configures a safespace app through a YAML file named with [WithConfigFile]
or through environment variables, cf. [config.FromEnv].
Sending syscall.SIGHUP to a running app calls [*Ranger.Reload],
which reads the configuration again from the same source.
A configuration that does not validate is logged and the previous one kept.

On top of the SAFESPACE_ variables, these environment variables are available:
  - SENTRY_DSN: report errors and panics to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout, as understood by [time.ParseDuration], for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s
*/
package ranger
