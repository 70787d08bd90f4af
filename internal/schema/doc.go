// Package schema reads type declarations from YAML or TOML files and builds
// a typegraph.Graph from them.
//
// Declaration files describe what Go source cannot: namespaces, types
// nested in other types and generic containers. A YAML file:
//
//	version: "1"
//	namespaces:
//	  - name: game/items
//	    package: example.com/game/items
//	    imports: [game/shared]
//	    types:
//	      - name: Rarity
//	        kind: enum
//	        underlying: uint8
//	        members: [Common, Rare, {name: Legendary, value: 10}]
//	      - name: Inventory
//	        kind: class
//	        root: true
//	        base: Container
//	        fields:
//	          - {name: slots, type: "List<Slot>"}
//	          - {name: owner, type: Character, serialize: ref}
//	          - {name: cache, type: "int[]", visibility: private}
//	        nested:
//	          - name: Slot
//	            fields:
//	              - {name: count, type: int32}
//	              - {name: rarity, type: Rarity}
//
// The same structure can be written in TOML ([[namespaces]],
// [[namespaces.types]] and so on). The format is chosen by file extension:
// .yaml and .yml, or .toml.
//
// Type expressions:
//
//	int32, float, string       basic types; Go spellings plus float,
//	                           double, long, short, sbyte, ushort, ulong
//	T[]                        resizable array
//	List<T>                    list
//	T[4]                       fixed-size buffer
//	Map<K, V>                  map (has no view)
//	*T                         pointer
//	Pair<int32, string>        generic instantiation
//	Outer.Inner                nested type
//	game/shared.Item           namespace-qualified name
//	viewrt.Vector3             short package-qualified name
//
// Unqualified names are looked up in the generic parameters and nested
// types of the enclosing declarations, innermost first, then in the
// namespace, then in its imports.
//
// Field defaults: public visibility, no serialization marker, no
// overrides. serialize takes value, ref or both; view takes nested or
// ignore. Enum members without a value continue from the previous one.
package schema
