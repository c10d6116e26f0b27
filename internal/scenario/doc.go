// Package scenario runs YAML scenario files against fresh component graphs
// and checks the notifications they produce.
//
// A scenario file holds one or more documents:
//
//	name: partial-cascade
//	description: a shared dependency survives the removal of one dependent
//	tags: [remove]
//	script: |
//	  DEPEND A C
//	  DEPEND B C
//	  INSTALL A
//	  INSTALL B
//	  REMOVE A
//	expected:
//	  output:
//	    - Installing C
//	    - Installing A
//	    - Installing B
//	    - Removing A
//	  installed: [B, C]
//	  rejected: 0
//
// Scenarios run independently, optionally in parallel. The expected output
// never includes echoed command lines.
package scenario
