// Package txml compiles .txml templates into JS modules exporting a JSX
// render function.
//
// The pipeline consists of:
//   - [Lexer]: tokenizes .txml source into a token stream
//   - [Parser]: builds an AST from the token stream and normalizes whitespace
//   - [Transform]: rewrites special tags and directives into control nodes
//   - [Generator]: emits the module from the transformed AST
//
// [Compile] runs all of them. Trees are edited during a [Walk] through a
// [Path], and [Summarize] and [FprintJSON] inspect trees for tooling.
package txml
