/*
The resp package provides a high-level API for building responses to HTTP requests
with an easy way to configure the responses application-wide.

resp builds two kinds of [Response]:
  - rendering templates, with [*Responder.Html]
  - rendering JSON data, with [*Responder.Json]

A [Response] is a finished object: a status code, headers and a body.
Nothing is written to a client until [*Response.Write] is called,
which leaves calling code free to adjust headers first.
*/
package resp
