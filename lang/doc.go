// Package lang parses and resolves build descriptions: line-oriented,
// Makefile-like files with variable assignments, explicit and implicit
// rules, file inclusion and conditional directives.
//
// Processing happens in two passes. [ParseFile] reads the source into an
// ordered list of [Item] values. [Resolve] then walks those items with a
// stack of conditional levels, expanding $(NAME) references and applying
// assignments to a [Vars] table, and returns the items that remain.
//
// # Grammar
//
// Each logical line is classified by the first rule that matches:
//
//	!include "path"          splice in the items of another file
//	NAME = value             assignment (NAME is ASCII letters, digits, _)
//	.src.dst:                implicit rule
//	target: dep ...          explicit rule (dependencies are optional)
//	!if expr                 conditional; also !elif, !ifdef NAME and
//	                         !ifndef NAME
//	!else, !endif            conditional without argument
//	<indent>command          command appended to the preceding rule
//
// A line beginning with # is a comment. A line ending in a single
// backslash continues on the next line; the pieces are joined with one
// space.
//
// # Example
//
//	CC = gcc
//	!ifdef DEBUG
//	CFLAGS = -g
//	!else
//	CFLAGS = -O2
//	!endif
//
//	.c.o:
//		$(CC) $(CFLAGS) -c $(SRC)
//
//	app: main.o util.o
//		$(CC) -o app main.o util.o
//
// # Variables
//
// Lookup consults the table first and then the environment. The
// environment is never written. Expansion repeats until no reference
// remains, bounded by [WithMaxSubstitutions].
//
// # Conditions
//
// A condition is either a bare number (true when nonzero) or a comparison
// of two numbers, two words or two double-quoted strings. See [EvalExpr].
//
// # Errors
//
// The first error aborts processing. Errors are [*Error] values carrying the
// source location, and match one of the sentinels in this package as well as
// their pass: [ErrParse] or [ErrResolve].
package lang
