/*
Package registry maps node kinds to factories.

Tree definitions name nodes by kind ("timeout", "inverter", "count"). A Registry
resolves the kind, checks that the node has the right number of children and
decodes its parameters with mapstructure before calling the factory. Default
returns a registry holding every stock leaf and decorator; callers register
their own kinds on top.
*/
package registry
