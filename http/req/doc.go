/*
Package req defines the failure raised when the data in an HTTP request breaks the rules set for it.

[ValidationErrors] is a presentable failure by default:
a handler returning one gets a rendered response instead of an opaque server error.
*/
package req
