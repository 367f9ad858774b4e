// Package compiler is the front end of the Drac compiler: a lexer, an LL(1)
// parser that builds the AST, and a two-pass semantic checker.
//
// Pipeline: Drac source → Lex → Parse → Check → accepted AST
//
// The package never prints or logs; every fault is returned as a
// *SyntaxError or *SemanticError.
package compiler
