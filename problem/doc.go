/*
Package problem defines [Problem], the failure application code raises
when it wants the end user to see what went wrong.

A Problem carries a message, an optional machine-readable code, an optional title
and, as an escape hatch, an optional prebuilt [resp.Response]:

	return problem.New("A woeful error", problem.WithTitle("Oh no!"), problem.WithCode("oops"))

Code and title are fixed once the Problem is constructed.

Types embedding *Problem are Problems too; [NotFound] is one such kind,
supplying its own default code and title.
*/
package problem
