// Package factbot provides pattern-driven natural-language query machinery.
//
// The token matcher is in package 'match', the pattern-action dispatcher is
// in 'dispatch', and the Wikipedia field-lookup collaborator is in 'wiki'.
// Some command-line tools are in 'cmd'.
package factbot
