/*
Package loader reads declarative tree definitions.

A definition file names a tree and describes its root as nested nodes, each with
a kind, an optional name, parameters and, for decorators, one child:

	name: patrol
	root:
	  kind: timeout
	  params:
	    duration: 2s
	  child:
	    kind: count
	    params:
	      fail_until: 0
	      running_until: 3

YAML is the default format; files ending in .json are read as JSON. Definitions
describe structure only; runtime state is never loaded or saved.
*/
package loader
