/*
Package safespace holds the pieces shared by every package in the module:
context keys, sentinel errors and helpers for reading configuration from the environment.

The heart of the module lives in package intercept,
which turns presentable failures raised while handling an HTTP request
into content-negotiated responses.
*/
package safespace
